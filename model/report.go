package model

// Status is the classified outcome of an executed command
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
)

// TimeLayout is the layout used for every timestamp in a Report
const TimeLayout = "2006-01-02 15:04:05.000000"

// Envelope is the top-level body POSTed to the reporting endpoint
type Envelope struct {
	// Destination identifier on the reporting side
	ID string `json:"id"`
	// Static submission key
	Key string `json:"key"`
	// The report itself
	Data Report `json:"data"`
}

// Report describes the outcome of one invocation (bookend or command)
type Report struct {
	// Identifier shared by all invocations of one CI run
	RunID string `json:"run_id"`
	// Branch under test
	Branch string `json:"branch"`
	// Name of the test (command name, or "Set Environment" for bookends)
	TestName string `json:"test_name"`
	// Module label ("_conftest", "_end" or "Sanity Checks")
	Module string `json:"module"`
	// Function label
	Function string `json:"function"`
	// Results keyed by test name, empty for bookends
	Results map[string]Result `json:"results"`
	// Side-channel metadata
	Extras Extras `json:"extras"`
	// Time the command was started (TimeLayout)
	TestStartTime string `json:"test_start_time"`
	// Time the command finished (TimeLayout)
	TestEndTime string `json:"test_end_time"`
	// Captured output, only when requested
	Stdout *string `json:"stdout,omitempty"`
}

// Result is the record for a single executed command
type Result struct {
	Passed    bool    `json:"passed"`
	Status    Status  `json:"status"`
	Exception *string `json:"exception"`
	Report    string  `json:"report"`
}

// Extras contains run metadata that is not part of the result itself
type Extras struct {
	Config Maintainer `json:"config"`
	// Value of the "test" environment variable
	Test string `json:"test"`
	// Branch as reported by the environment
	GitBranch string `json:"git_branch"`
	// HEAD commit of the working directory, if it is a git checkout
	GitCommit string `json:"git_commit,omitempty"`
	// Time the reporter process started (TimeLayout)
	StartTime string `json:"start_time"`
	// Exit code of the executed command, only set for command reports
	ReturnCode *int `json:"returncode,omitempty"`
}

// Maintainer identifies who to contact about a run
type Maintainer struct {
	Email string `json:"maintainer_email"`
	// Optional tracking number
	IMNumber string `json:"IM Number,omitempty"`
}
