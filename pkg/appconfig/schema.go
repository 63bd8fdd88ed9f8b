package appconfig

import (
	"strconv"

	"github.com/theory-cloud/reactstarter/pkg/envschema"
)

const (
	KeyBaseURLAPI             = "BASE_URL_API"
	KeyBuildDate              = "BUILD_DATE"
	KeyBuildTime              = "BUILD_TIME"
	KeyBuildTimestamp         = "BUILD_TS"
	KeyBuildCommitSHA         = "BUILD_COMMIT_SHA"
	KeyBuildEnvCode           = "BUILD_ENV_CODE"
	KeyBuildWorkflowName      = "BUILD_WORKFLOW_NAME"
	KeyBuildWorkflowRunNumber = "BUILD_WORKFLOW_RUN_NUMBER"
	KeyBuildWorkflowAttempt   = "BUILD_WORKFLOW_RUN_ATTEMPT"
	KeyToastAutoDismissMillis = "TOAST_AUTO_DISMISS_MILLIS"
)

const DefaultToastAutoDismissMillis = 5000

// Schema is the application key namespace.
var Schema = envschema.MustNew("app",
	envschema.URL(KeyBaseURLAPI),
	envschema.Date(KeyBuildDate),
	envschema.Time(KeyBuildTime),
	envschema.DateTime(KeyBuildTimestamp),
	envschema.String(KeyBuildCommitSHA),
	envschema.String(KeyBuildEnvCode),
	envschema.String(KeyBuildWorkflowName),
	envschema.Integer(KeyBuildWorkflowRunNumber),
	envschema.Integer(KeyBuildWorkflowAttempt),
	envschema.Integer(KeyToastAutoDismissMillis).WithDefault(strconv.Itoa(DefaultToastAutoDismissMillis)),
)
