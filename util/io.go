package util

import (
	"encoding/json"
	"errors"
	"os"
)

// WriteJSONToFile marshals value and writes it to file, overwriting
// anything already there.
func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

// ReadJSONFromFile reads and unmarshals a JSON file into T.
func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return value, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}
