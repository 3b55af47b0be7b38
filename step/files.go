package step

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

const (
	// FILE_MAGIC opens and closes an exchange file
	FILE_MAGIC = "ISO-10303-21"
	// TIMESTAMP_FORMAT is the format of FILE_NAME time stamps
	TIMESTAMP_FORMAT = "2006-01-02T15:04:05"
	// DEFAULT_IMPLEMENTATION_LEVEL is the conformance level written in FILE_DESCRIPTION
	DEFAULT_IMPLEMENTATION_LEVEL = "2;1"
)

// Header is the HEADER section of an exchange file
type Header struct {
	// Description is the FILE_DESCRIPTION content, for instance ViewDefinition [CoordinationView]
	Description []string
	// ImplementationLevel is the conformance level
	ImplementationLevel string
	// Name of the file
	Name string
	// TimeStamp is the creation date
	TimeStamp time.Time
	// Authors of the file
	Authors []string
	// Organizations of the authors
	Organizations []string
	// PreprocessorVersion is the system that wrote the file
	PreprocessorVersion string
	// OriginatingSystem is the system the data comes from
	OriginatingSystem string
	// Authorization is the person who authorized the file
	Authorization string
	// Schemas are the schema names, for instance IFC2X3
	Schemas []string
}

// NewHeader returns a header for a file name and a schema, created now
func NewHeader(name string, schemas ...string) Header {
	return Header{
		Description:         []string{"ViewDefinition [CoordinationView]"},
		ImplementationLevel: DEFAULT_IMPLEMENTATION_LEVEL,
		Name:                name,
		TimeStamp:           time.Now().UTC(),
		Schemas:             schemas,
	}
}

// nonEmpty returns values, or a single empty string for no value
func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return []string{""}
	}

	return values
}

// statements returns the header statements, without final semicolons
func (h Header) statements() ([]string, error) {
	level := h.ImplementationLevel
	if len(level) == 0 {
		level = DEFAULT_IMPLEMENTATION_LEVEL
	}

	if len(h.Schemas) == 0 {
		return nil, fmt.Errorf("%w: header needs at least one schema", ErrValue)
	}

	description := List{StringList(nonEmpty(h.Description)), String(level)}
	fileName := List{
		String(h.Name),
		String(h.TimeStamp.UTC().Format(TIMESTAMP_FORMAT)),
		StringList(nonEmpty(h.Authors)),
		StringList(nonEmpty(h.Organizations)),
		String(h.PreprocessorVersion),
		String(h.OriginatingSystem),
		String(h.Authorization),
	}
	fileSchema := List{StringList(h.Schemas)}

	var result []string
	for _, statement := range []struct {
		keyword string
		values  List
	}{
		{"FILE_DESCRIPTION", description},
		{"FILE_NAME", fileName},
		{"FILE_SCHEMA", fileSchema},
	} {
		if encoded, err := EncodeValue(statement.values); err != nil {
			return nil, err
		} else {
			result = append(result, statement.keyword+encoded)
		}
	}

	return result, nil
}

// WriteFile writes a complete exchange file: header section, then instances as data section
func WriteFile(writer io.Writer, header Header, instances []Instance) error {
	statements, err := header.statements()
	if err != nil {
		return err
	}

	buffer := bufio.NewWriter(writer)
	lines := []string{FILE_MAGIC + ";", "HEADER;"}
	for _, statement := range statements {
		lines = append(lines, statement+";")
	}

	lines = append(lines, "ENDSEC;", "DATA;")
	for _, line := range lines {
		if _, err := buffer.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	if err := WriteInstances(buffer, instances); err != nil {
		return err
	}

	for _, line := range []string{"ENDSEC;", "END-" + FILE_MAGIC + ";"} {
		if _, err := buffer.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	return buffer.Flush()
}

// splitStatements cuts content on semicolons outside of strings, dropping comments
func splitStatements(content string) ([]string, error) {
	var result []string
	var current strings.Builder
	inString := false
	for index := 0; index < len(content); index++ {
		character := content[index]
		switch {
		case inString:
			current.WriteByte(character)
			if character == '\'' {
				inString = false
			}
		case character == '\'':
			inString = true
			current.WriteByte(character)
		case character == '/' && index+1 < len(content) && content[index+1] == '*':
			end := strings.Index(content[index+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated comment", ErrSyntax)
			}

			index = index + 2 + end + 1
		case character == ';':
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		case character == '\n' || character == '\r':
			// statements may span lines
		default:
			current.WriteByte(character)
		}
	}

	if inString {
		return nil, fmt.Errorf("%w: unterminated string", ErrSyntax)
	} else if rest := strings.TrimSpace(current.String()); len(rest) != 0 {
		return nil, fmt.Errorf("%w: statement without semicolon: %q", ErrSyntax, rest)
	}

	return result, nil
}

// ReadInstances parses the instances of an exchange file, sorted by id.
// If content has a DATA section, only that section is read.
// Otherwise, content is expected to be instance statements only.
func ReadInstances(reader io.Reader) ([]Instance, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	statements, err := splitStatements(string(raw))
	if err != nil {
		return nil, err
	}

	hasData := false
	for _, statement := range statements {
		if strings.EqualFold(statement, "DATA") || strings.HasPrefix(strings.ToUpper(statement), "DATA(") {
			hasData = true
			break
		}
	}

	inData := !hasData
	seen := make(map[int]bool)
	var result []Instance
	for _, statement := range statements {
		upper := strings.ToUpper(statement)
		switch {
		case len(statement) == 0:
			continue
		case upper == "DATA" || strings.HasPrefix(upper, "DATA("):
			inData = true
		case upper == "ENDSEC":
			inData = false
		case !inData:
			continue
		default:
			instance, err := ParseInstance(statement)
			if err != nil {
				return nil, err
			} else if seen[instance.Id] {
				return nil, fmt.Errorf("%w: instance #%d defined twice", ErrSyntax, instance.Id)
			}

			seen[instance.Id] = true
			result = append(result, instance)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}
