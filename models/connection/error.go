package connection

import "fmt"

const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnLoopPassThrough
	ConnInvalidMsgType
)

// ConnErr tells the session loop what to do after a failed read or write.
type ConnErr struct {
	code uint8
	desc string
	err  error
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Wrap(err error) ConnErr {
	c.err = err
	return c
}

func (c ConnErr) Error() string {
	if c.err != nil {
		return fmt.Sprintf("connection error - code: %d\tdesc: %s\terr: %v", c.code, c.desc, c.err)
	}
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Unwrap() error {
	return c.err
}

func (c ConnErr) Code() uint8 {
	return c.code
}
