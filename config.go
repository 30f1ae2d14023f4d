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
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/go-shard-merge/sql/dialect"
)

const (
	dialectEnvKey        = "SHARDMERGE_DIALECT"
	verifyOrderingEnvKey = "SHARDMERGE_VERIFY_ORDERING"
	logLevelEnvKey       = "SHARDMERGE_LOG_LEVEL"
)

// DefaultMemoryGroupWarnThreshold is the number of groups above which an
// in-memory group by logs a warning by default.
const DefaultMemoryGroupWarnThreshold = 100000

// Config is the configuration of an Engine.
type Config struct {
	// Dialect of the shards: mysql, mariadb, postgresql, opengauss, oracle,
	// sqlserver or sql92.
	Dialect string `yaml:"dialect"`
	// VerifyOrdering checks that every shard returns its rows sorted on the
	// streaming merges.
	VerifyOrdering bool `yaml:"verify_ordering"`
	// MemoryGroupWarnThreshold is the number of groups above which an
	// in-memory group by logs a warning. Zero disables it.
	MemoryGroupWarnThreshold int `yaml:"memory_group_warn_threshold"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Dialect:                  dialect.MySQL.String(),
		MemoryGroupWarnThreshold: DefaultMemoryGroupWarnThreshold,
		LogLevel:                 logrus.InfoLevel.String(),
		LogFormat:                TextLogFormat,
	}
}

// LoadConfig reads the configuration in the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %s: %s", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration. Missing keys take their default
// value, and the SHARDMERGE_* environment variables override the file.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %s", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(dialectEnvKey); ok {
		c.Dialect = v
	}

	if v, ok := os.LookupEnv(verifyOrderingEnvKey); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %s", v, verifyOrderingEnvKey, err)
		}
		c.VerifyOrdering = b
	}

	if v, ok := os.LookupEnv(logLevelEnvKey); ok {
		c.LogLevel = v
	}

	return nil
}

// Validate returns an error if any setting has an invalid value.
func (c *Config) Validate() error {
	if _, err := c.ParsedDialect(); err != nil {
		return err
	}

	if c.MemoryGroupWarnThreshold < 0 {
		return fmt.Errorf("memory_group_warn_threshold cannot be negative, got %d", c.MemoryGroupWarnThreshold)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case TextLogFormat, JSONLogFormat:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}

// ParsedDialect returns the dialect named by the configuration.
func (c *Config) ParsedDialect() (dialect.Dialect, error) {
	return dialect.Parse(c.Dialect)
}
