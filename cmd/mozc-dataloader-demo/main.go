// Command mozc-dataloader-demo exercises the internal/dataloader facade
// end to end against synthetic mockformat data packages: it registers a
// couple of competing reload requests, builds the winner, demonstrates
// ReportLoadFailure reactivation, and warms a handful of install
// directories concurrently. It is not part of the library's public
// contract -- a way to drive the loader by hand, nothing more.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mozcdata/dataloader/internal/dataloader"
	"github.com/mozcdata/dataloader/internal/packageload"
	"github.com/mozcdata/dataloader/internal/packageload/mockformat"
)

func main() {
	var (
		workDir       string
		installCount  int
		ioConcurrency int
	)

	flag.StringVar(&workDir, "dir", "", "working directory for synthetic data packages (default: a temp dir)")
	flag.IntVar(&installCount, "installs", 3, "number of install-location directories to warm concurrently")
	flag.IntVar(&ioConcurrency, "concurrency", 2, "max concurrent install-location warms")
	flag.Parse()

	if err := run(workDir, installCount, ioConcurrency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var magic = []byte("MOCK")

func run(workDir string, installCount, ioConcurrency int) error {
	if workDir == "" {
		dir, err := os.MkdirTemp("", "mozc-dataloader-demo")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	}

	primaryPath := filepath.Join(workDir, "primary.data")
	secondaryPath := filepath.Join(workDir, "secondary.data")

	if err := os.WriteFile(primaryPath, mockformat.Encode(magic, "2.1.0"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", primaryPath, err)
	}
	if err := os.WriteFile(secondaryPath, mockformat.Encode(magic, "1.0.0"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", secondaryPath, err)
	}

	loader := packageload.NewLoader(mockformat.NewParser())
	dl := dataloader.NewDataLoader(loader)

	// secondary arrives first, at low priority.
	secondaryID := dl.RegisterRequest(dataloader.Request{
		EngineType:  dataloader.EngineDesktop,
		FilePath:    secondaryPath,
		MagicNumber: magic,
		Priority:    5,
	})
	fmt.Printf("registered secondary request, top=%d\n", secondaryID)

	// primary arrives next, at high priority, and should win.
	primaryID := dl.RegisterRequest(dataloader.Request{
		EngineType:  dataloader.EngineMobile,
		FilePath:    primaryPath,
		MagicNumber: magic,
		Priority:    0,
	})
	fmt.Printf("registered primary request, top=%d\n", primaryID)

	top := dl.Build(primaryID)
	top.Wait()
	resp := top.Get()
	fmt.Printf("build(primary) -> %s\n", resp.Status)

	if resp.Status == dataloader.StatusReloadReady {
		version := resp.Modules.GetDataManager().GetDataVersion()
		fmt.Printf("loaded data_version=%s\n", version)

		if cmp, err := packageload.CompareVersions(version, "2.0.0"); err == nil && cmp < 0 {
			fmt.Printf("warning: %s is older than the previously installed 2.0.0\n", version)
		}
	}

	// A failed load should still let the same request reactivate later.
	reactivatedTop := dl.ReportLoadFailure(primaryID)
	fmt.Printf("after ReportLoadFailure(primary), top=%d (secondary now wins)\n", reactivatedTop)

	if again := dl.RegisterRequest(dataloader.Request{
		EngineType:  dataloader.EngineMobile,
		FilePath:    primaryPath,
		MagicNumber: magic,
		Priority:    0,
	}); again != primaryID {
		return fmt.Errorf("re-registering the identical primary request should reactivate the same fingerprint, got %d want %d", again, primaryID)
	}
	fmt.Println("primary request reactivated by re-registration")

	return warmInstallLocations(workDir, primaryPath, installCount, ioConcurrency)
}

// warmInstallLocations builds installCount independent install-location
// copies of primaryPath concurrently, bounded by ioConcurrency so a large
// install count doesn't open more files at once than the caller wants.
func warmInstallLocations(workDir, primaryPath string, installCount, ioConcurrency int) error {
	g, ctx := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, ioConcurrency)

	loader := packageload.NewLoader(mockformat.NewParser())

	for i := 0; i < installCount; i++ {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			installPath := filepath.Join(workDir, fmt.Sprintf("install-%d", i), "current.data")
			if err := os.MkdirAll(filepath.Dir(installPath), 0o755); err != nil {
				return err
			}

			resp := loader.Load(dataloader.Request{
				FilePath:        primaryPath,
				InstallLocation: installPath,
				MagicNumber:     magic,
			})
			if resp.Status != dataloader.StatusReloadReady {
				return fmt.Errorf("warm install %d: %s", i, resp.Status)
			}

			fmt.Printf("warmed install location %s\n", installPath)

			return nil
		})
	}

	return g.Wait()
}
