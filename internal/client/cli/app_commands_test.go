package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/client/services"
	"github.com/slabvault/slabvault/internal/common"
)

func stubAmount(t *testing.T, v float64, err error) {
	t.Helper()
	orig := getAmount
	getAmount = func(_ *bufio.Reader, _ string, _ io.Writer) (float64, error) { return v, err }
	t.Cleanup(func() { getAmount = orig })
}

type fakeWorkflow struct {
	loadErr   error
	cards     []models.Card
	tier      models.ServiceTier
	addErr    error
	updateErr error
	deleteErr error
	contID    string
	contErr   error

	gotInput  models.CardInput
	gotPrice  float64
	gotCardID string
	saved     bool
}

func (f *fakeWorkflow) Load(context.Context) error { return f.loadErr }
func (f *fakeWorkflow) Cards() []models.Card       { return f.cards }
func (f *fakeWorkflow) Tier() models.ServiceTier   { return f.tier }
func (f *fakeWorkflow) AddCard(_ context.Context, in models.CardInput, price float64) error {
	f.gotInput, f.gotPrice = in, price
	return f.addErr
}
func (f *fakeWorkflow) UpdateCard(_ context.Context, id string, in models.CardInput, price float64) error {
	f.gotCardID, f.gotInput, f.gotPrice = id, in, price
	return f.updateErr
}
func (f *fakeWorkflow) DeleteCard(_ context.Context, id string) error {
	f.gotCardID = id
	return f.deleteErr
}
func (f *fakeWorkflow) Continue(context.Context) (string, error) { return f.contID, f.contErr }
func (f *fakeWorkflow) SaveAndExit(context.Context)              { f.saved = true }

func newCardApp(wf *fakeWorkflow) *App {
	return &App{
		session:  &fakeSession{user: &models.User{Name: "Sam"}},
		workflow: wf,
		reader:   rdr(""),
	}
}

func TestAddCardCommand_PassesInput(t *testing.T) {
	stubPrompts(t, []string{"Ken Griffey", "1989", "Upper Deck", "UD0001", "rookie"}, "")
	stubAmount(t, 49, nil)

	wf := &fakeWorkflow{tier: models.TierStandard}
	a := newCardApp(wf)

	require.NoError(t, a.AddCard(context.Background()))
	require.Equal(t, "Ken Griffey", wf.gotInput.Player)
	require.Equal(t, "UD0001", wf.gotInput.CardNumber)
	require.Equal(t, "rookie", wf.gotInput.Notes)
	require.Equal(t, 49.0, wf.gotPrice)
}

func TestAddCardCommand_SurfacesValidationError(t *testing.T) {
	stubPrompts(t, []string{"Al", "1989", "Upper Deck", "UD0001", ""}, "")
	stubAmount(t, 49, nil)

	wf := &fakeWorkflow{addErr: models.FieldErrors{"player": "Minimum 3 characters required."}}
	a := newCardApp(wf)

	require.Error(t, a.AddCard(context.Background()))
}

func TestEditCardCommand(t *testing.T) {
	stubPrompts(t, []string{"c1", "Mia Hamm", "1999", "Sports Illustrated", "SI9901", ""}, "")
	stubAmount(t, 69, nil)

	wf := &fakeWorkflow{}
	a := newCardApp(wf)

	require.NoError(t, a.EditCard(context.Background()))
	require.Equal(t, "c1", wf.gotCardID)
	require.Equal(t, "Mia Hamm", wf.gotInput.Player)
	require.Equal(t, 69.0, wf.gotPrice)
}

func TestDeleteCardCommand_Confirmation(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		stubPrompts(t, []string{"c1", "y"}, "")
		wf := &fakeWorkflow{}
		a := newCardApp(wf)

		require.NoError(t, a.DeleteCard(context.Background()))
		require.Equal(t, "c1", wf.gotCardID)
	})

	t.Run("declined", func(t *testing.T) {
		stubPrompts(t, []string{"c1", "n"}, "")
		wf := &fakeWorkflow{}
		a := newCardApp(wf)

		require.NoError(t, a.DeleteCard(context.Background()))
		require.Empty(t, wf.gotCardID, "declined delete must not reach the workflow")
	})
}

func TestReviewCommand_NoCards(t *testing.T) {
	wf := &fakeWorkflow{contErr: common.ErrNoCards}
	a := newCardApp(wf)

	require.Error(t, a.Review(context.Background()))
}

func TestSaveCommand(t *testing.T) {
	wf := &fakeWorkflow{}
	a := newCardApp(wf)

	require.NoError(t, a.Save(context.Background()))
	require.True(t, wf.saved)
}

type fakeBench struct {
	loadErr      error
	analyticsErr error
	rows         []models.Submission
	pagination   models.Pagination
	analytics    *models.Analytics
	changeErr    error

	gotPage   int
	gotStatus models.SubmissionStatus
	gotID     string
	gotChange models.SubmissionStatus
}

func (f *fakeBench) LoadPage(_ context.Context, page int, status models.SubmissionStatus) error {
	f.gotPage, f.gotStatus = page, status
	return f.loadErr
}
func (f *fakeBench) LoadAnalytics(context.Context) error { return f.analyticsErr }
func (f *fakeBench) Submissions() []models.Submission    { return f.rows }
func (f *fakeBench) Pagination() models.Pagination       { return f.pagination }
func (f *fakeBench) Analytics() *models.Analytics        { return f.analytics }
func (f *fakeBench) Refine(services.Filter) []models.Submission {
	return f.rows
}
func (f *fakeBench) ChangeStatus(_ context.Context, id string, status models.SubmissionStatus) error {
	f.gotID, f.gotChange = id, status
	return f.changeErr
}

func newAdminApp(b *fakeBench) *App {
	return &App{
		session: &fakeSession{user: &models.User{Name: "Root", Role: models.RoleAdmin}},
		admin:   b,
		reader:  rdr(""),
	}
}

func TestAdminList_LoadsRequestedPage(t *testing.T) {
	stubPrompts(t, []string{"2", "grading"}, "")
	b := &fakeBench{pagination: models.Pagination{Page: 2, TotalPages: 5, Total: 42}}
	a := newAdminApp(b)

	require.NoError(t, a.AdminList(context.Background()))
	require.Equal(t, 2, b.gotPage)
	require.Equal(t, models.StatusGrading, b.gotStatus)
}

func TestAdminList_RejectsUnknownStatus(t *testing.T) {
	stubPrompts(t, []string{"1", "misplaced"}, "")
	b := &fakeBench{}
	a := newAdminApp(b)

	require.NoError(t, a.AdminList(context.Background()))
	require.Zero(t, b.gotPage, "bad status must not trigger a load")
}

func TestAdminCommands_RequireAdmin(t *testing.T) {
	b := &fakeBench{}
	a := newAdminApp(b)
	a.session = &fakeSession{user: &models.User{Name: "Sam"}}

	require.NoError(t, a.AdminList(context.Background()))
	require.NoError(t, a.AdminAnalytics(context.Background()))
	require.NoError(t, a.AdminSetStatus(context.Background()))
	require.Zero(t, b.gotPage)
	require.Empty(t, b.gotID)
}

func TestAdminSetStatus(t *testing.T) {
	stubPrompts(t, []string{"sub-1", "completed"}, "")
	b := &fakeBench{}
	a := newAdminApp(b)

	require.NoError(t, a.AdminSetStatus(context.Background()))
	require.Equal(t, "sub-1", b.gotID)
	require.Equal(t, models.StatusCompleted, b.gotChange)
}

func TestAdminSetStatus_Error(t *testing.T) {
	stubPrompts(t, []string{"sub-1", "completed"}, "")
	b := &fakeBench{changeErr: errors.New("boom")}
	a := newAdminApp(b)

	require.Error(t, a.AdminSetStatus(context.Background()))
}
