package errors

import "fmt"

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// ConfigFileErr is returned when none of the candidate config files could be loaded.
func ConfigFileErr(paths []string, err error) error {
	return E(Config, fmt.Sprintf("cannot load config from %v", paths), err)
}

// SerializeErr wraps a failure to turn a transaction into its wire representation.
func SerializeErr(format, txID string, err error) error {
	return E(Serialization, fmt.Sprintf("cannot serialize transaction %s as %s", txID, format), err)
}

// PublishErr wraps a failed delivery report for the given key.
func PublishErr(topic, key string, err error) error {
	return E(Publish, fmt.Sprintf("delivery of %s to %s failed", key, topic), err)
}
