// Command client is the secure file-transfer client: it reads a startup descriptor, then
// registers or reconnects, exchanges keys, and uploads one file, verifying its checksum.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/akamensky/argparse"

	"securexfer/config"
	"securexfer/constants"
	"securexfer/cryptoutil"
	"securexfer/identity"
	"securexfer/protocol"
	"securexfer/session"
	"securexfer/transport"
)

// Exit codes, one per failure class, mirroring the teacher's distinct os.Exit calls.
const (
	exitOK = iota
	exitStartupError
	exitTransportError
	exitProtocolError
	exitSessionError
)

func main() {
	os.Exit(run())
}

func run() int {
	parser := argparse.NewParser("client", constants.Title)
	infoPath := parser.String("i", "info", &argparse.Options{
		Required: false,
		Default:  constants.DefaultStartupFile,
		Help:     "Path to the startup descriptor file",
	})
	dscp := parser.Int("d", "dscp", &argparse.Options{
		Required: false,
		Default:  constants.DefaultDSCP,
		Help:     "DSCP code point to mark outgoing packets with",
	})
	mptcp := parser.Flag("m", "mptcp", &argparse.Options{
		Required: false,
		Help:     "Enable Multipath TCP on the connection",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		return exitStartupError
	}

	startup, err := config.ReadStartup(*infoPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		return exitStartupError
	}

	opts := transport.Options{DSCP: uint8(*dscp), MPTCP: *mptcp}
	link, err := transport.Connect(context.Background(), startup.ServerAddr, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		return exitTransportError
	}
	defer link.Close()

	m := &session.Machine{
		Link:     link,
		Identity: identity.DefaultStore(),
		UserName: startup.UserName,
		FilePath: startup.FilePath,
	}

	outcome := m.Run()
	if outcome.Err != nil {
		fmt.Fprintln(os.Stderr, "session failed:", outcome.Err)
		return exitCodeFor(outcome.Err)
	}

	fmt.Println("transfer complete, client id", outcome.ClientID)
	return exitOK
}

// exitCodeFor maps a terminal session error to a distinct exit code by failure class.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, transport.ErrTransportFailure):
		return exitTransportError
	case errors.Is(err, protocol.ErrMalformedPayload),
		errors.Is(err, cryptoutil.ErrCryptoFailure),
		errors.Is(err, identity.ErrIdentityCorrupt):
		return exitProtocolError
	default:
		return exitSessionError
	}
}
