package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// lineFormatter optionally rewrites lines through a gojq program before
// they are displayed, which makes JSONL files navigable without leaving the
// viewer. Lines that are not valid JSON pass through untouched.
type lineFormatter struct {
	code *gojq.Code
}

func newLineFormatter(program string) (*lineFormatter, error) {
	if program == "" {
		return &lineFormatter{}, nil
	}

	query, err := gojq.Parse(program)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq program: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq program: %w", err)
	}
	return &lineFormatter{code: code}, nil
}

// Format applies the jq program to line. The original line is returned when
// no program is configured, when the line is not JSON, or when the program
// errors out or yields nothing.
func (f *lineFormatter) Format(line string) string {
	if f.code == nil {
		return line
	}

	var doc any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return line
	}

	var parts []string
	iter := f.code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if _, isErr := v.(error); isErr {
			return line
		}

		if s, isStr := v.(string); isStr {
			parts = append(parts, s)
			continue
		}
		marshaled, err := json.Marshal(v)
		if err != nil {
			return line
		}
		parts = append(parts, string(marshaled))
	}

	if len(parts) == 0 {
		return line
	}
	return strings.Join(parts, " ")
}
