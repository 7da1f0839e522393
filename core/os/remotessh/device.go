// Copyright (C) 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package remotessh runs commands on emulator hosts reachable over SSH.
//
// A remote host is any machine that runs the emulator and its adb server.
// Commands built for a Device execute on that host, so assigning the
// device's Target to adb.Host points the whole adb layer at the remote
// machine.
package remotessh

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"os"
	"sort"

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Device is an emulator host reachable over SSH.
type Device interface {
	// Name returns the configuration name for the connection.
	Name() string
	// Shell builds a shell.Cmd that runs on the remote host.
	Shell(name string, args ...string) shell.Cmd
	// Target returns a shell.Target that starts commands on the remote
	// host.
	Target() shell.Target
	// Probe checks the connection by running a trivial command on the
	// host.
	Probe(ctx context.Context) error
	// SetupLocalPort forwards a local TCP port to the given port on the
	// remote host, and returns the local port that was opened.
	SetupLocalPort(ctx context.Context, remotePort int) (int, error)
	// Close shuts down the SSH connection.
	Close() error
}

// binding represents a connected SSH host.
type binding struct {
	connection    *ssh.Client
	configuration *Configuration
	env           *shell.Env
	slots         chan struct{}
}

var _ Device = (*binding)(nil)

// Devices returns the list of reachable SSH hosts for the given
// configuration stream. Hosts that cannot be reached are skipped with a
// warning.
func Devices(ctx context.Context, configuration io.Reader) ([]Device, error) {
	configurations, err := ReadConfigurations(configuration)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(configurations))

	for _, cfg := range configurations {
		device, err := Connect(ctx, cfg)
		if err != nil {
			log.W(ctx, "Skipping %v: %v", cfg.Name, err)
			continue
		}
		devices = append(devices, device)
	}

	return devices, nil
}

// getSSHAgent returns a connection to a local SSH agent, if one exists.
func getSSHAgent() ssh.AuthMethod {
	if sshAgent, err := net.Dial("unix", os.Getenv("SSH_AUTH_SOCK")); err == nil {
		return ssh.PublicKeysCallback(agent.NewClient(sshAgent).Signers)
	}
	return nil
}

// getPrivateKeyAuth returns an SSH auth for the given private key.
// It will fail if the private key was encrypted.
func getPrivateKeyAuth(path string) (ssh.AuthMethod, error) {
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(bytes)
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

// Connect opens an SSH connection for the given configuration.
func Connect(ctx context.Context, c Configuration) (Device, error) {
	auths := []ssh.AuthMethod{}
	if agent := getSSHAgent(); agent != nil {
		auths = append(auths, agent)
	}

	if c.Keyfile != "" {
		if auth, err := getPrivateKeyAuth(c.Keyfile); err == nil {
			auths = append(auths, auth)
		}
	}

	if len(auths) == 0 {
		return nil, fmt.Errorf("No valid authentication method for SSH connection %s", c.Name)
	}

	hosts, err := knownhosts.New(c.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("Could not read known hosts %v", err)
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.User,
		Auth:            auths,
		HostKeyCallback: hosts,
	}

	connection, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", c.Host, c.Port), sshConfig)
	if err != nil {
		return nil, err
	}

	env := shell.NewEnv()
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env.Set(k, c.Env[k])
	}

	b := &binding{
		connection:    connection,
		configuration: &c,
		env:           env,
		slots:         make(chan struct{}, maxSessions),
	}

	if err := b.Probe(ctx); err != nil {
		connection.Close()
		return nil, err
	}
	return b, nil
}

// Name returns the configuration name for the connection.
func (b *binding) Name() string {
	return b.configuration.Name
}

// Target returns a shell.Target that starts commands on the remote host.
func (b *binding) Target() shell.Target {
	return sshShellTarget{b}
}

// Close shuts down the SSH connection.
func (b *binding) Close() error {
	return b.connection.Close()
}
