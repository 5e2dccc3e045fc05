/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"
)

// DemotedLevel is the level expected reconciler errors are written with.
// logr verbosity maps to zapLevel = -1*logrLevel, so this is the first
// verbosity hidden by default.
const DemotedLevel = zapcore.Level(-3)

// expectedReconcilerErrors are substrings of reconciler errors that are part
// of normal operation: a stale cache read and a manager shutting down.
var expectedReconcilerErrors = []string{
	"the object has been modified; please apply your changes to the latest version and try again",
	"context canceled",
}

// ExpectedErrorsCore is a zapcore.Core writing expected reconciler errors
// at TargetLevel without a stack trace. Other entries are written unchanged.
type ExpectedErrorsCore struct {
	zapcore.Core

	TargetLevel zapcore.Level
}

func NewExpectedErrorsCore(core zapcore.Core) zapcore.Core {
	return ExpectedErrorsCore{Core: core, TargetLevel: DemotedLevel}
}

func (c ExpectedErrorsCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c ExpectedErrorsCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if isExpectedReconcilerError(entry, fields) {
		if !c.Core.Enabled(c.TargetLevel) {
			return nil
		}
		entry.Level = c.TargetLevel
		entry.Stack = ""
	}
	return c.Core.Write(entry, fields)
}

func (c ExpectedErrorsCore) With(fields []zapcore.Field) zapcore.Core {
	return ExpectedErrorsCore{Core: c.Core.With(fields), TargetLevel: c.TargetLevel}
}

func isExpectedReconcilerError(entry zapcore.Entry, fields []zapcore.Field) bool {
	if entry.Level != zapcore.ErrorLevel || entry.Message != "Reconciler error" {
		return false
	}
	return slices.ContainsFunc(fields, func(field zapcore.Field) bool {
		if field.Key != "error" || field.Type != zapcore.ErrorType {
			return false
		}
		err, ok := field.Interface.(error)
		if !ok || err == nil {
			return false
		}
		msg := err.Error()
		return slices.ContainsFunc(expectedReconcilerErrors, func(s string) bool {
			return strings.Contains(msg, s)
		})
	})
}
