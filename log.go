// Copyright 2026 Dolthub, Inc.
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

package shardmerge

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Log formats accepted by ConfigureLogging and the log_format setting.
const (
	// TextLogFormat writes logfmt-style lines with full timestamps.
	TextLogFormat = "text"
	// JSONLogFormat writes one JSON object per entry.
	JSONLogFormat = "json"
)

// ConfigureLogging sets the level and the format of the standard logger,
// which every sql.Context logs to unless it is given another logger.
func ConfigureLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	var formatter logrus.Formatter
	switch format {
	case TextLogFormat, "":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case JSONLogFormat:
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	return nil
}

// ConfigureLogging applies the logging settings of the configuration.
func (c *Config) ConfigureLogging() error {
	return ConfigureLogging(c.LogLevel, c.LogFormat)
}
