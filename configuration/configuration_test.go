// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtau/corda/configuration"
	"github.com/tomtau/corda/fault"
)

// write a configuration file into a scratch directory
func writeConfiguration(t *testing.T, text string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration-test")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestGetConfiguration(t *testing.T) {

	fileName, cleanup := writeConfiguration(t, `
local M = {}

M.data_directory = "."
M.chain = "testing"

M.database = {
    directory = "data",
    name = "store.leveldb",
}

M.logging = {
    size = 2097152,
    count = 20,
    console = true,
    levels = {
        DEFAULT = "info",
    },
}

return M
`)
	defer cleanup()

	cfg, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	dataDirectory := filepath.Dir(fileName)

	if "testing" != cfg.Chain {
		t.Errorf("chain: %q  expected: %q", cfg.Chain, "testing")
	}
	if dataDirectory != filepath.Clean(cfg.DataDirectory) {
		t.Errorf("data directory: %q  expected: %q", cfg.DataDirectory, dataDirectory)
	}

	expectedDatabaseDirectory := filepath.Join(dataDirectory, "data")
	if expectedDatabaseDirectory != cfg.Database.Directory {
		t.Errorf("database directory: %q  expected: %q", cfg.Database.Directory, expectedDatabaseDirectory)
	}
	expectedDatabaseName := filepath.Join(expectedDatabaseDirectory, "store.leveldb")
	if expectedDatabaseName != cfg.Database.Name {
		t.Errorf("database name: %q  expected: %q", cfg.Database.Name, expectedDatabaseName)
	}

	// directories must have been created
	for _, dir := range []string{cfg.Database.Directory, cfg.Logging.Directory} {
		info, err := os.Stat(dir)
		if nil != err {
			t.Fatalf("stat %q error: %s", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", dir)
		}
	}

	if 2097152 != cfg.Logging.Size {
		t.Errorf("log size: %d  expected: %d", cfg.Logging.Size, 2097152)
	}
	if 20 != cfg.Logging.Count {
		t.Errorf("log count: %d  expected: %d", cfg.Logging.Count, 20)
	}
	if !cfg.Logging.Console {
		t.Error("console logging not enabled")
	}
	if "info" != cfg.Logging.Levels["DEFAULT"] {
		t.Errorf("log level: %q  expected: %q", cfg.Logging.Levels["DEFAULT"], "info")
	}

	expectedLogFile := filepath.Join(cfg.Logging.Directory, "corda.log")
	if expectedLogFile != cfg.Logging.File {
		t.Errorf("log file: %q  expected: %q", cfg.Logging.File, expectedLogFile)
	}
}

// the database name follows the chain when not set explicitly
func TestGetConfigurationDefaultDatabase(t *testing.T) {

	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "local"
return M
`)
	defer cleanup()

	cfg, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	if "local.leveldb" != filepath.Base(cfg.Database.Name) {
		t.Errorf("database name: %q  expected base: %q", cfg.Database.Name, "local.leveldb")
	}
}

func TestGetConfigurationErrors(t *testing.T) {

	// unsupported chain
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "bogus"
return M
`)
	defer cleanup()
	_, err := configuration.GetConfiguration(fileName)
	if nil == err {
		t.Error("unsupported chain not detected")
	}

	// database name must be a plain file name
	fileName, cleanup = writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "testing"
M.database = { name = "sub/store.leveldb" }
return M
`)
	defer cleanup()
	_, err = configuration.GetConfiguration(fileName)
	if nil == err {
		t.Error("database path name not detected")
	}

	// data directory is required
	fileName, cleanup = writeConfiguration(t, `
local M = {}
M.chain = "testing"
return M
`)
	defer cleanup()
	_, err = configuration.GetConfiguration(fileName)
	if nil == err {
		t.Error("missing data directory not detected")
	}

	// missing file
	_, err = configuration.GetConfiguration("/nonexistent/none.conf")
	if nil == err {
		t.Error("missing file not detected")
	}
}

func TestParseConfigurationFileGuards(t *testing.T) {

	fileName, cleanup := writeConfiguration(t, `return {}`)
	defer cleanup()

	// not a pointer
	err := configuration.ParseConfigurationFile(fileName, configuration.Configuration{})
	if fault.ErrInvalidStructPointer != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidStructPointer)
	}

	// nil pointer
	var nilConfig *configuration.Configuration
	err = configuration.ParseConfigurationFile(fileName, nilConfig)
	if fault.ErrInvalidStructPointer != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrInvalidStructPointer)
	}
}
