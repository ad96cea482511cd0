package reference

import "context"

// StubFetcher returns canned roster data for tests.
type StubFetcher struct {
	Data  Data
	Err   error
	Calls int
}

func (s *StubFetcher) FetchReferenceData(ctx context.Context) (Data, error) {
	s.Calls++
	if s.Err != nil {
		return Data{}, s.Err
	}
	return s.Data, nil
}
