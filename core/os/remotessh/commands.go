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

package remotessh

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/OpenWSGR/autowsgr/core/app/crash"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"github.com/OpenWSGR/autowsgr/core/text"
	"golang.org/x/crypto/ssh"
)

// maxSessions bounds how many concurrent commands run over one connection.
// OpenSSH servers default to refusing more than ten sessions per channel.
const maxSessions = 8

// pooledSession wraps an ssh.Session together with its slot in the
// binding's session pool. The slot is released exactly once, when the
// session is killed or waited on.
type pooledSession struct {
	session *ssh.Session
	release func()
}

func (b *binding) newPooledSession() (*pooledSession, error) {
	b.slots <- struct{}{}
	session, err := b.connection.NewSession()
	if err != nil {
		<-b.slots
		return nil, err
	}
	once := sync.Once{}
	return &pooledSession{
		session: session,
		release: func() {
			once.Do(func() {
				session.Close()
				<-b.slots
			})
		},
	}, nil
}

func (p *pooledSession) kill() error {
	defer p.release()
	return p.session.Signal(ssh.SIGKILL)
}

func (p *pooledSession) wait() error {
	defer p.release()
	return p.session.Wait()
}

// remoteProcess is the interface to a running process, as started by a Target.
type remoteProcess struct {
	wg      sync.WaitGroup
	session *pooledSession
}

func (r *remoteProcess) Kill() error {
	return r.session.kill()
}

func (r *remoteProcess) Wait(ctx context.Context) error {
	ret := r.session.wait()
	r.wg.Wait()
	return ret
}

var _ shell.Process = (*remoteProcess)(nil)

type sshShellTarget struct{ b *binding }

// Start starts the given command in the remote shell.
func (t sshShellTarget) Start(cmd shell.Cmd) (shell.Process, error) {
	pooled, err := t.b.newPooledSession()
	if err != nil {
		return nil, err
	}
	p := &remoteProcess{
		session: pooled,
		wg:      sync.WaitGroup{},
	}

	if cmd.Stdin != nil {
		stdin, err := pooled.session.StdinPipe()
		if err != nil {
			return nil, err
		}
		crash.Go(func() {
			defer stdin.Close()
			io.Copy(stdin, cmd.Stdin)
		})
	}

	if cmd.Stdout != nil {
		stdout, err := pooled.session.StdoutPipe()
		if err != nil {
			return nil, err
		}
		p.wg.Add(1)
		crash.Go(func() {
			io.Copy(cmd.Stdout, stdout)
			p.wg.Done()
		})
	}

	if cmd.Stderr != nil {
		stderr, err := pooled.session.StderrPipe()
		if err != nil {
			return nil, err
		}
		p.wg.Add(1)
		crash.Go(func() {
			io.Copy(cmd.Stderr, stderr)
			p.wg.Done()
		})
	}

	prefix := ""
	if cmd.Dir != "" {
		prefix += "cd " + cmd.Dir + "; "
	}

	for _, e := range cmd.Environment.Keys() {
		if e != "" {
			val := text.Quote([]string{cmd.Environment.Get(e)})[0]
			prefix = prefix + strings.TrimSpace(e) + "=" + val + " "
		}
	}

	for _, e := range t.b.env.Keys() {
		if e != "" {
			val := text.Quote([]string{t.b.env.Get(e)})[0]
			prefix = prefix + strings.TrimSpace(e) + "=" + val + " "
		}
	}

	val := prefix + cmd.Name + " " + strings.Join(cmd.Args, " ")
	if err := pooled.session.Start(val); err != nil {
		return nil, err
	}

	return p, nil
}

func (t sshShellTarget) String() string {
	c := t.b.configuration
	return c.User + "@" + c.Host + ": " + c.Name
}

// Shell implements the Device interface returning commands that will run on
// the remote host.
func (b *binding) Shell(name string, args ...string) shell.Cmd {
	return shell.Command(name, args...).On(sshShellTarget{b})
}

// Probe checks the connection by running a trivial command on the host.
func (b *binding) Probe(ctx context.Context) error {
	_, err := b.Shell("echo", "Hello World").Call(ctx)
	return err
}
