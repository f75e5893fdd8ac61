package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const availabilityProbeTimeout = 5 * time.Second

// TesseractCLI recognizes text in page images by shelling out to the
// tesseract binary. Every invocation is bounded by the caller's context;
// on expiry the whole process group is force-killed so no orphaned
// processes survive a cancelled extraction.
type TesseractCLI struct {
	binary    string
	languages string
}

// NewTesseractCLI creates a tesseract-backed OCR engine. Empty arguments
// fall back to "tesseract" and "eng".
func NewTesseractCLI(binary, languages string) *TesseractCLI {
	if binary == "" {
		binary = "tesseract"
	}
	if languages == "" {
		languages = "eng"
	}
	return &TesseractCLI{binary: binary, languages: languages}
}

// Available verifies the tesseract binary exists and responds.
func (t *TesseractCLI) Available() error {
	if _, err := exec.LookPath(t.binary); err != nil {
		return fmt.Errorf("tesseract not found in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), availabilityProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary, "--version")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tesseract not runnable: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Recognize runs OCR over a single page image. The image is written into
// workDir, which the caller owns and removes. The context deadline bounds
// the external process.
func (t *TesseractCLI) Recognize(ctx context.Context, workDir string, image []byte) (string, error) {
	imagePath := filepath.Join(workDir, fmt.Sprintf("page-%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(imagePath, image, 0o600); err != nil {
		return "", fmt.Errorf("write page image: %w", err)
	}

	cmd := exec.Command(t.binary, imagePath, "stdout", "-l", t.languages)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start tesseract: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		// Kill the whole process group, not just the direct child.
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("tesseract failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
