// Package services contains the application services behind the interactive
// client: the submission-building workflow, the payment step, the user
// dashboard, and the admin workbench. Each service talks to the REST API
// through a narrow transport interface and mirrors responses into the
// session cache for reuse across commands.
package services
