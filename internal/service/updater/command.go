package updater

import (
	"bytes"
	"context"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"

	goupdate "github.com/doitdistributed/go-update"
	"gopkg.in/yaml.v3"

	"github.com/mkazantsev/ovenctl/internal/config"
	"github.com/mkazantsev/ovenctl/internal/logger"
	"github.com/mkazantsev/ovenctl/internal/version"

	// Ensure SHA512 is available for checksum validation.
	_ "crypto/sha512"
)

const (
	// ManifestFilename is the release manifest published in the update folder.
	ManifestFilename = "ovenctl-version.yaml"

	// DefaultFileMode is applied to the replaced binary.
	DefaultFileMode os.FileMode = 0o755

	// DefaultChecksumFunction is used to validate downloaded binaries.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512
)

var (
	errNoUpdateFolder = errors.New("no update folder configured")
	errNoChecksum     = errors.New("checksum missing for file")
	errBadHTTPStatus  = errors.New("unexpected http status")
)

// Manifest describes a published release.
type Manifest struct {
	// Version is the semantic version of the release.
	Version string `yaml:"version"`
	// Files maps artifact names to their base64-encoded SHA-512 checksums.
	Files map[string]string `yaml:"files"`
}

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// Run checks the configured update folder for a newer release and applies
// it over the current binary in place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ovenctl-updater")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if cfg.UpdateFolder == "" {
		return errNoUpdateFolder
	}

	manifest, err := fetchManifest(ctx, cfg.UpdateFolder)
	if err != nil {
		return fmt.Errorf("fetch manifest: %w", err)
	}

	if manifest.Version == version.Short() {
		logger.InfoKV(ctx, "Already up to date", "version", manifest.Version)

		return nil
	}

	logger.InfoKV(ctx, "Update available",
		"current", version.Short(), "available", manifest.Version)

	name := executableName()

	checksum, err := manifestChecksum(manifest, name)
	if err != nil {
		return err
	}

	data, err := download(ctx, cfg.UpdateFolder, name)
	if err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}

	options := goupdate.Options{
		TargetMode: DefaultFileMode,
		Checksum:   checksum,
		Hash:       DefaultChecksumFunction,
	}

	if err := goupdate.Apply(bytes.NewReader(data), options); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	logger.InfoKV(ctx, "Update applied", "version", manifest.Version)

	return nil
}

// fetchManifest downloads and parses the release manifest.
func fetchManifest(ctx context.Context, folder string) (*Manifest, error) {
	data, err := download(ctx, folder, ManifestFilename)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

// manifestChecksum extracts and decodes the checksum for the named artifact.
func manifestChecksum(manifest *Manifest, name string) ([]byte, error) {
	encoded, ok := manifest.Files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errNoChecksum)
	}

	checksum, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode checksum for %s: %w", name, err)
	}

	return checksum, nil
}

// download fetches one artifact from the update folder.
func download(ctx context.Context, folder, name string) ([]byte, error) {
	target, err := url.JoinPath(folder, name)
	if err != nil {
		return nil, fmt.Errorf("join update URL: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %w", target, response.StatusCode, errBadHTTPStatus)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	return data, nil
}

// executableName returns the platform-specific controller binary name.
func executableName() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return "ovenctl.exe"
	}

	return "ovenctl"
}
