package git

import (
	"fmt"
	"os"

	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"

	"github.com/quantmind-br/ghget/internal/domain"
)

// AuthFromIdentity loads the private key named by id and returns the SSH
// auth method used for listing and cloning.
func AuthFromIdentity(id domain.Identity) (*gitssh.PublicKeys, error) {
	if id.KeyPath == "" {
		return nil, fmt.Errorf("SSH key path is required")
	}

	keyBytes, err := os.ReadFile(id.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	var signer ssh.Signer
	if id.Passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(id.Passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key %s: %w", id.KeyPath, err)
	}

	user := id.User
	if user == "" {
		user = gitssh.DefaultUsername
	}

	auth := &gitssh.PublicKeys{
		User:   user,
		Signer: signer,
	}
	if id.InsecureIgnoreHostKey {
		auth.HostKeyCallback = ssh.InsecureIgnoreHostKey() // #nosec G106 -- opt-in via --insecure-ignore-host-key
	}

	return auth, nil
}
