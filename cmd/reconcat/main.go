// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/spf13/cobra"

	recon "github.com/saltlick/reconcat"
)

var (
	dumpPath string
	regions  string
	corrPath string
	outPath  string
	verbose  bool
	fullJSON bool
)

func prettyPrint(buff []byte) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, buff, "", "\t"); err != nil {
		log.Println("JSON pretty-print error:", err)
		return string(buff)
	}
	return prettyJSON.String()
}

// scanResultFile is the on-disk JSON shape a scanner front end hands
// reconcat: the serializable fields of recon.ScanResult, plus the raw
// ESM file path instead of its bytes (so the fixture stays small).
type scanResultFile struct {
	ESMPath          string                        `json:"esm_path"`
	MainRecords      []recon.MainRecordAnchor      `json:"main_records"`
	EditorIDs        []recon.EditorIDAnchor        `json:"editor_ids"`
	DisplayNames     []recon.DisplayNameAnchor     `json:"display_names"`
	RuntimeEditorIDs []recon.RuntimeEditorIDEntry  `json:"runtime_editor_ids"`
	CellGridAnchors  []recon.CellGridAnchor        `json:"cell_grid_anchors"`
	CellWorldspaceHints map[recon.FormID]recon.FormID `json:"cell_worldspace_hints"`
}

// regionsFile is the on-disk JSON shape for the Xbox 360 dump's region
// table (recon.Region), loaded only when --dump is given.
type regionsFile struct {
	Regions []recon.Region `json:"regions"`
}

func loadScanResult(path string) (recon.ScanResult, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return recon.ScanResult{}, fmt.Errorf("reading scan result %s: %w", path, err)
	}
	var sf scanResultFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return recon.ScanResult{}, fmt.Errorf("parsing scan result %s: %w", path, err)
	}
	esm, err := ioutil.ReadFile(sf.ESMPath)
	if err != nil {
		return recon.ScanResult{}, fmt.Errorf("reading esm file %s: %w", sf.ESMPath, err)
	}
	return recon.ScanResult{
		ESMData:             esm,
		MainRecords:         sf.MainRecords,
		EditorIDs:           sf.EditorIDs,
		DisplayNames:        sf.DisplayNames,
		RuntimeEditorIDs:    sf.RuntimeEditorIDs,
		CellGridAnchors:     sf.CellGridAnchors,
		CellWorldspaceHints: sf.CellWorldspaceHints,
	}, nil
}

// openDumpView memory-maps dumpFile read-only and builds a DumpView over
// it using the region table in regionsFilePath. If dumpFile is empty it
// returns a nil view, a no-op closer and a nil error: dump-only fallback
// reconstruction is optional.
func openDumpView(dumpFile, regionsFilePath string) (*recon.DumpView, func() error, error) {
	if dumpFile == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.Open(dumpFile)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dump file %s: %w", dumpFile, err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mapping dump file %s: %w", dumpFile, err)
	}
	closer := func() error {
		if err := m.Unmap(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	raw, err := ioutil.ReadFile(regionsFilePath)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("reading region table %s: %w", regionsFilePath, err)
	}
	var rf regionsFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		closer()
		return nil, nil, fmt.Errorf("parsing region table %s: %w", regionsFilePath, err)
	}

	return recon.NewDumpView(m, rf.Regions), closer, nil
}

func loadCorrelations(path string) (map[recon.FormID]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading correlations %s: %w", path, err)
	}
	var m map[recon.FormID]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing correlations %s: %w", path, err)
	}
	return m, nil
}

func runReconstruct(cmd *cobra.Command, args []string) {
	scanPath := args[0]

	scan, err := loadScanResult(scanPath)
	if err != nil {
		log.Fatal(err)
	}

	view, closer, err := openDumpView(dumpPath, regions)
	if err != nil {
		log.Fatal(err)
	}
	defer closer()

	correlations, err := loadCorrelations(corrPath)
	if err != nil {
		log.Fatal(err)
	}

	opts := recon.Options{
		Scan:         scan,
		Dump:         view,
		Correlations: correlations,
	}
	if verbose {
		opts.Progress = func(percent int, phase string) {
			log.Printf("[%3d%%] %s", percent, phase)
		}
	}

	cat := recon.Reconstruct(opts)

	if fullJSON {
		buf, err := json.Marshal(cat)
		if err != nil {
			log.Fatal(err)
		}
		writeOutput(prettyPrint(buf))
		return
	}

	writeOutput(prettyPrint(mustMarshal(cat.Counts())))
}

func mustMarshal(v interface{}) []byte {
	buf, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}
	return buf
}

func writeOutput(s string) {
	if outPath == "" {
		fmt.Println(s)
		return
	}
	if err := ioutil.WriteFile(outPath, []byte(s), 0644); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "reconcat",
		Short: "Fuses an ESM master file with an Xbox 360 dump into a typed game-data catalog",
		Long:  "reconcat reconstructs a game's full data catalog from an ESM master file, optionally enriched by a captured Xbox 360 memory dump",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.0.1")
		},
	}

	var reconstructCmd = &cobra.Command{
		Use:   "reconstruct <scan-result.json>",
		Short: "Run the full reconstruction and print catalog counts or JSON",
		Args:  cobra.ExactArgs(1),
		Run:   runReconstruct,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log phase progress to stderr")
	reconstructCmd.Flags().StringVar(&dumpPath, "dump", "", "path to the Xbox 360 memory dump image (optional)")
	reconstructCmd.Flags().StringVar(&regions, "regions", "", "path to the dump's region table JSON (required with --dump)")
	reconstructCmd.Flags().StringVar(&corrPath, "correlations", "", "path to a FormID->editorID correlation JSON (optional)")
	reconstructCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	reconstructCmd.Flags().BoolVar(&fullJSON, "full", false, "dump the entire catalog instead of just counts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reconstructCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
