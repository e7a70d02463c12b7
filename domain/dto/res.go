package dto

// Res is the generic response envelope used by middleware and handlers.
type Res struct {
	ResponseCode    string      `json:"responseCode"`
	ResponseMessage string      `json:"responseMessage"`
	Data            interface{} `json:"data,omitempty"`
}

// Errs carries a list of validation messages, mirroring the error body shape
// the mobile clients already parse.
type Errs struct {
	Errors []ErrMsg `json:"errors"`
}

type ErrMsg struct {
	Msg string `json:"msg"`
}

// NewErrs wraps plain messages into the validation error body.
func NewErrs(msgs ...string) Errs {
	e := Errs{Errors: make([]ErrMsg, 0, len(msgs))}
	for _, m := range msgs {
		e.Errors = append(e.Errors, ErrMsg{Msg: m})
	}
	return e
}
