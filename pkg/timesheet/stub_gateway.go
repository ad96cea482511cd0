package timesheet

import "context"

// StubGateway records submitted payloads for tests.
type StubGateway struct {
	Payloads []Payload
	Err      error
}

func (s *StubGateway) Submit(ctx context.Context, payload Payload) error {
	if s.Err != nil {
		return s.Err
	}
	s.Payloads = append(s.Payloads, payload)
	return nil
}
