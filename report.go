package shipdesk

import "unicode/utf8"

// Preview lengths used in extraction reports, in characters.
const (
	reportPreviewLen = 1000
	reportDebugLen   = 200
)

// ExtractionReport is the response returned after extracting a document.
type ExtractionReport struct {
	Success       bool        `json:"success"`
	ExtractedText string      `json:"extracted_text"`
	ParsedData    Fields      `json:"parsed_data"`
	Debug         ReportDebug `json:"debug_info"`
}

// ReportDebug carries diagnostics about an extraction.
type ReportDebug struct {
	TextLength    int    `json:"text_length"`
	First200Chars string `json:"first_200_chars"`
	PatternsFound int    `json:"patterns_found"`
}

// NewExtractionReport builds the report for text and the fields found in it.
// The extracted text is truncated to its first 1000 characters with a
// trailing "..." when longer.
func NewExtractionReport(text string, fields Fields) *ExtractionReport {
	if fields == nil {
		fields = Fields{}
	}
	preview := truncate(text, reportPreviewLen)
	if preview != text {
		preview += "..."
	}
	return &ExtractionReport{
		Success:       true,
		ExtractedText: preview,
		ParsedData:    fields,
		Debug: ReportDebug{
			TextLength:    utf8.RuneCountInString(text),
			First200Chars: truncate(text, reportDebugLen),
			PatternsFound: len(fields),
		},
	}
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
