package main

import (
	"testing"

	"github.com/MatheusDosSantosR/tasktracker/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			server := testsupport.NewServer(t)
			return testsupport.SetupScriptEnv(t, env, server.URL())
		},
	})
}
