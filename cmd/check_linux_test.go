//go:build linux

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestRunCheckDryRun(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := RunCheck(&Options{
		Specs:    []string{"macvlan,eth0,mcv0", "veth,vhost0,veth0"},
		Pid:      4242,
		DryRun:   true,
		LogLevel: "error",
		Out:      &out,
	})
	require.NoError(t, err)

	var plan struct {
		Pid        int    `yaml:"pid"`
		Transient  string `yaml:"transient"`
		Interfaces []struct {
			Kind   string `yaml:"kind"`
			Source string `yaml:"source"`
			Target string `yaml:"target"`
		} `yaml:"interfaces"`
		Messages []string `yaml:"messages"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &plan))

	assert.Equal(t, 4242, plan.Pid)
	assert.Equal(t, "pflask-4242", plan.Transient)
	require.Len(t, plan.Interfaces, 2)
	assert.Equal(t, "macvlan", plan.Interfaces[0].Kind)
	assert.Equal(t, "eth0", plan.Interfaces[0].Source)
	assert.Equal(t, "mcv0", plan.Interfaces[0].Target)
	assert.Equal(t, "veth", plan.Interfaces[1].Kind)
	assert.Len(t, plan.Messages, 4)
}

func TestRunCheckInvalidSpec(t *testing.T) {
	isolate(t)

	err := RunCheck(&Options{Specs: []string{"macvlan,eth0"}, DryRun: true, LogLevel: "error", Out: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestRunNetifRequiresPid(t *testing.T) {
	assert.Error(t, RunNetif(&Options{Specs: []string{"eth0,wan0"}}))
}
