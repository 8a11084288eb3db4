// https://random-word-api.herokuapp.com/home
package randomword

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResponse = errors.New("invalid random word response")

// Response is a decoded response body. The API returns a JSON array of words,
// but nothing is assumed about the element types until FirstWord is called.
type Response []any

func ParseResponse(body []byte) (Response, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal > %w", ErrInvalidResponse, err)
	}
	values, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array but got %s", ErrInvalidResponse, body)
	}
	return Response(values), nil
}

// FirstWord returns the first element in lowercase. Any following elements are discarded.
func (r Response) FirstWord() (string, error) {
	if len(r) == 0 {
		return "", fmt.Errorf("%w: no words", ErrInvalidResponse)
	}
	word, ok := r[0].(string)
	if !ok || word == "" {
		return "", fmt.Errorf("%w: first element %v is not a word", ErrInvalidResponse, r[0])
	}
	return strings.ToLower(word), nil
}
