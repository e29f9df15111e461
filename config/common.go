// go-common local proxy functions

package config

import (
	"errors"
	"github.com/rstms/go-common"
)

var ErrNoName = errors.New("no file or directory name to check")

func Fatal(err error) error {
	return common.Fatal(err)
}

func Fatalf(format string, args ...interface{}) error {
	return common.Fatalf(format, args...)
}
