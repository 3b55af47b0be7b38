package step

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is raised when a text is not a valid instance
var ErrSyntax = errors.New("invalid step syntax")

// Instance is a single entity instance line: #Id=KEYWORD(Attributes);
type Instance struct {
	// Id is the positive instance id
	Id int
	// Keyword is the upper case entity name
	Keyword string
	// Attributes is the encoded attribute list, without surrounding parenthesis
	Attributes string
}

// String returns the instance line
func (i Instance) String() string {
	return fmt.Sprintf("#%d=%s(%s);", i.Id, i.Keyword, i.Attributes)
}

// Fields returns the top level attributes, as encoded
func (i Instance) Fields() ([]string, error) {
	return splitTopLevel(i.Attributes)
}

// References returns the ids referenced by the instance, in order of appearance, with duplicates
func (i Instance) References() []int {
	var result []int
	inString := false
	value := i.Attributes
	for index := 0; index < len(value); index++ {
		switch current := value[index]; {
		case current == '\'':
			inString = !inString
		case inString:
			continue
		case current == '#':
			end := index + 1
			for end < len(value) && value[end] >= '0' && value[end] <= '9' {
				end++
			}

			if id, err := strconv.Atoi(value[index+1 : end]); err == nil {
				result = append(result, id)
			}

			index = end - 1
		}
	}

	return result
}

// splitTopLevel splits on commas outside of strings and parenthesis
func splitTopLevel(value string) ([]string, error) {
	if len(strings.TrimSpace(value)) == 0 {
		return []string{}, nil
	}

	var result []string
	depth := 0
	inString := false
	start := 0
	for index := 0; index < len(value); index++ {
		current := value[index]
		switch {
		case current == '\'':
			// doubled quotes toggle twice, which is fine
			inString = !inString
		case inString:
			continue
		case current == '(':
			depth++
		case current == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrSyntax, value)
			}
		case current == ',' && depth == 0:
			result = append(result, strings.TrimSpace(value[start:index]))
			start = index + 1
		}
	}

	if inString {
		return nil, fmt.Errorf("%w: unterminated string in %q", ErrSyntax, value)
	} else if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrSyntax, value)
	}

	result = append(result, strings.TrimSpace(value[start:]))
	return result, nil
}

// ParseInstance reads a single instance statement, with or without final semicolon
func ParseInstance(statement string) (Instance, error) {
	var result Instance
	value := strings.TrimSpace(statement)
	value = strings.TrimSuffix(value, ";")
	value = strings.TrimSpace(value)

	if !strings.HasPrefix(value, "#") {
		return result, fmt.Errorf("%w: instance should start with #: %q", ErrSyntax, statement)
	}

	equal := strings.IndexByte(value, '=')
	if equal < 0 {
		return result, fmt.Errorf("%w: missing = in %q", ErrSyntax, statement)
	}

	if id, err := strconv.Atoi(strings.TrimSpace(value[1:equal])); err != nil || id <= 0 {
		return result, fmt.Errorf("%w: invalid instance id in %q", ErrSyntax, statement)
	} else {
		result.Id = id
	}

	body := strings.TrimSpace(value[equal+1:])
	open := strings.IndexByte(body, '(')
	if open <= 0 || !strings.HasSuffix(body, ")") {
		return result, fmt.Errorf("%w: invalid instance body in %q", ErrSyntax, statement)
	}

	result.Keyword = strings.ToUpper(strings.TrimSpace(body[:open]))
	if !isKeyword(result.Keyword) {
		return result, fmt.Errorf("%w: invalid keyword %q", ErrSyntax, result.Keyword)
	}

	result.Attributes = body[open+1 : len(body)-1]
	if _, err := splitTopLevel(result.Attributes); err != nil {
		return result, err
	}

	return result, nil
}

// isKeyword returns true for a standard keyword: a letter then letters, digits or underscores
func isKeyword(value string) bool {
	if len(value) == 0 {
		return false
	}

	for index := 0; index < len(value); index++ {
		current := value[index]
		switch {
		case current >= 'A' && current <= 'Z':
		case index > 0 && (current >= '0' && current <= '9' || current == '_'):
		default:
			return false
		}
	}

	return true
}
