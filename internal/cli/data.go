package cli

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const aclImdbURL = "https://ai.stanford.edu/~amaas/data/sentiment/aclImdb_v1.tar.gz"

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the aclImdb review dataset",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var dest string
	var url string
	var force bool
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download and unpack the aclImdb dataset",
		Example: `  imdbow data download
  imdbow data download --dest data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dataDownload(url, dest, force)
		},
	}
	downloadCmd.Flags().StringVar(&dest, "dest", ".", "Directory to unpack aclImdb/ into")
	downloadCmd.Flags().StringVar(&url, "url", aclImdbURL, "Dataset archive URL")
	downloadCmd.Flags().BoolVar(&force, "force", false, "Replace an existing aclImdb folder")

	dataCmd.AddCommand(downloadCmd)
	return dataCmd
}

func dataDownload(url, dest string, force bool) error {
	folder := filepath.Join(dest, "aclImdb")
	if _, err := os.Stat(folder); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to replace it)", folder)
		}
		if err := os.RemoveAll(folder); err != nil {
			return fmt.Errorf("remove existing %s: %w", folder, err)
		}
	}

	slog.Info("Downloading dataset", "url", url)
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download data: HTTP %d", resp.StatusCode)
	}

	count, err := extractTarGz(resp.Body, dest)
	if err != nil {
		return err
	}
	slog.Info("Dataset extracted", "files", count, "folder", folder)
	return nil
}

// extractTarGz unpacks a gzip-compressed tar stream under dest and returns
// the number of regular files written.
func extractTarGz(r io.Reader, dest string) (int, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	root, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}

	tr := tar.NewReader(gr)
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read tar: %w", err)
		}

		target := filepath.Join(root, filepath.FromSlash(hdr.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return count, fmt.Errorf("archive entry %q escapes %s", hdr.Name, dest)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf("create dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return count, fmt.Errorf("create parent dir: %w", err)
			}
			f, err := os.Create(target)
			if err != nil {
				return count, fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				_ = f.Close()
				return count, fmt.Errorf("write file %s: %w", target, err)
			}
			_ = f.Close()
			count++
			if count%10000 == 0 {
				slog.Debug("Extracting", "files", count)
			}
		}
	}
	return count, nil
}
