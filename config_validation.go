package conninfo

import (
	"fmt"
	"reflect"
	"strings"
)

func (c *config) validate() error {
	if err := validateDefaultHost(c.defaultHost); err != nil {
		return err
	}

	if isNilLogger(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if isNilMetrics(c.metrics) {
		return fmt.Errorf("metrics cannot be nil")
	}
	return nil
}

func validateDefaultHost(host string) error {
	if host == "" {
		return fmt.Errorf("default host cannot be empty")
	}
	if strings.ContainsAny(host, " \t\r\n") {
		return fmt.Errorf("default host %q cannot contain whitespace", host)
	}
	if strings.Contains(host, "/") {
		return fmt.Errorf("default host %q must be a host[:port], not a URL", host)
	}
	return nil
}

func isNilLogger(logger Logger) bool {
	return isNilInterface(logger)
}

func isNilMetrics(metrics Metrics) bool {
	return isNilInterface(metrics)
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
