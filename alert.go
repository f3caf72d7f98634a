// Copyright 2024 the go-textmatch authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textmatch

import (
	"github.com/sirupsen/logrus"
)

const alertLogMessage = "textmatch alert"

// LogAlert is the default Options.Alert: it logs every alert through
// logrus' standard logger with structured "importance" and "message"
// fields, the same shape auth.NewAuditLog gives audit trails. Plan
// announcements log at Info; output disambiguation notes, bilenko's
// insufficient-training notice and anything else carrying importance
// "warning" log at Warn.
func LogAlert(message string, importance string) {
	NewLogAlert(logrus.StandardLogger())(message, importance)
}

// NewLogAlert builds an Options.Alert bound to a specific logrus.Logger,
// for callers who don't want LogAlert's dependency on the package-level
// standard logger.
func NewLogAlert(l *logrus.Logger) func(message string, importance string) {
	entry := l.WithField("system", "textmatch")
	return func(message string, importance string) {
		fields := logrus.Fields{"importance": importance, "message": message}
		if importance == "warning" {
			entry.WithFields(fields).Warn(alertLogMessage)
			return
		}
		entry.WithFields(fields).Info(alertLogMessage)
	}
}
