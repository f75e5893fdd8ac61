package ranking

// Response is the public ranking payload. A job with no applications is a
// valid request: ok stays true and ranked is empty.
type Response struct {
	OK     bool      `json:"ok"`
	JobID  string    `json:"jobId"`
	Ranked []*Result `json:"ranked"`
}
