package req

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Decode читает тело запроса в T. Пустое тело дает нулевое значение
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	err := jsoniter.NewDecoder(body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		return payload, err
	}
	return payload, nil
}
