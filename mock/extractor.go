package mock

import "github.com/harborline/shipdesk"

var _ shipdesk.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of shipdesk.FieldExtractor.
type FieldExtractor struct {
	ExtractFn func(text string) shipdesk.Fields
}

func (e *FieldExtractor) Extract(text string) shipdesk.Fields {
	return e.ExtractFn(text)
}
