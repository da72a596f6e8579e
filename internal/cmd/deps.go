package cmd

import (
	"os"

	"github.com/salmonumbrella/org-cli/internal/secrets"
)

var (
	openSecretsStore = secrets.OpenDefault
	envGet           = os.Getenv
)
