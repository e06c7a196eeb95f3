// Package persist implements the two on-disk snapshot formats from
// spec.md §6: methodology.agerun (method definitions) and agency.agerun
// (live agents with their memory). Both are line-oriented, version-headed
// text files; an unrecognized header or a version newer than this binary
// understands causes the file to be ignored rather than treated as fatal
// (spec.md §6, resolving the Open Question via SPEC_FULL.md §9: refuse
// rather than silently corrupt state).
package persist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quenio/agerun-go/internal/agent"
	"github.com/quenio/agerun-go/internal/eval"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
	"github.com/quenio/agerun-go/internal/value"
)

const (
	methodologyHeader = "AGERUN_METHODOLOGY"
	agencyHeader      = "AGERUN_AGENCY"
	formatVersion     = 1

	methodologyFile = "methodology.agerun"
	agencyFile      = "agency.agerun"
)

// Save writes methodology.agerun and agency.agerun into dir.
func Save(dir string, m *method.Methodology, ag *agent.Agency) error {
	if err := saveMethodology(filepath.Join(dir, methodologyFile), m); err != nil {
		return err
	}
	return saveAgency(filepath.Join(dir, agencyFile), ag)
}

func saveMethodology(path string, m *method.Methodology) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	methods := m.All()
	fmt.Fprintf(w, "%s %d\n", methodologyHeader, formatVersion)
	fmt.Fprintf(w, "%d\n", len(methods))
	for _, meth := range methods {
		lines := strings.Split(strings.TrimRight(meth.Source, "\n"), "\n")
		fmt.Fprintf(w, "%s %d %d %d %d\n", meth.Name, meth.Version.Major, meth.Version.Minor, meth.Version.Patch, len(lines))
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
	return w.Flush()
}

func saveAgency(path string, ag *agent.Agency) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	agents := ag.All()
	fmt.Fprintf(w, "%s %d\n", agencyHeader, formatVersion)
	fmt.Fprintf(w, "%d\n", ag.NextID())
	fmt.Fprintf(w, "%d\n", len(agents))
	for _, a := range agents {
		fmt.Fprintf(w, "%d %s %d %d %d\n", a.ID, a.MethodName, a.Version.Major, a.Version.Minor, a.Version.Patch)
		fmt.Fprintln(w, serializeValue(a.Memory))
	}
	return w.Flush()
}

// Load restores m and ag from dir. A missing file is skipped silently. An
// unrecognized header or a version this binary doesn't understand is logged
// as a PersistError and leaves m/ag untouched (spec.md §6-7); an error
// opening an existing file is returned.
func Load(dir string, m *method.Methodology, ag *agent.Agency, log *rerrors.Log) error {
	if err := loadMethodology(filepath.Join(dir, methodologyFile), m, log); err != nil {
		return err
	}
	return loadAgency(filepath.Join(dir, agencyFile), ag, log)
}

func loadMethodology(path string, m *method.Methodology, log *rerrors.Log) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return nil
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 || header[0] != methodologyHeader {
		log.Report(rerrors.PersistError, token.Position{}, "", "persist: unrecognized header in %s", path)
		return nil
	}
	version, err := strconv.Atoi(header[1])
	if err != nil || version > formatVersion {
		log.Report(rerrors.PersistError, token.Position{}, "", "persist: unsupported methodology version in %s", path)
		return nil
	}

	count := scanInt(sc)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			log.Report(rerrors.PersistError, token.Position{}, "", "persist: truncated method record in %s", path)
			return nil
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 5 {
			log.Report(rerrors.PersistError, token.Position{}, "", "persist: malformed method header in %s", path)
			return nil
		}
		name := fields[0]
		major, _ := strconv.Atoi(fields[1])
		minor, _ := strconv.Atoi(fields[2])
		patch, _ := strconv.Atoi(fields[3])
		lineCount, _ := strconv.Atoi(fields[4])

		var bodyLines []string
		for j := 0; j < lineCount; j++ {
			if !sc.Scan() {
				log.Report(rerrors.PersistError, token.Position{}, "", "persist: truncated method body in %s", path)
				return nil
			}
			bodyLines = append(bodyLines, sc.Text())
		}
		source := strings.Join(bodyLines, "\n")
		body, ok := eval.ParseMethodBody(source, log)
		if !ok {
			continue
		}
		version := method.Semver{Major: major, Minor: minor, Patch: patch}
		m.Register(&method.Method{Name: name, Version: version, Body: body, Source: source})
	}
	return nil
}

func loadAgency(path string, ag *agent.Agency, log *rerrors.Log) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return nil
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 || header[0] != agencyHeader {
		log.Report(rerrors.PersistError, token.Position{}, "", "persist: unrecognized header in %s", path)
		return nil
	}
	version, err := strconv.Atoi(header[1])
	if err != nil || version > formatVersion {
		log.Report(rerrors.PersistError, token.Position{}, "", "persist: unsupported agency version in %s", path)
		return nil
	}

	nextID := scanInt(sc)
	count := scanInt(sc)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			log.Report(rerrors.PersistError, token.Position{}, "", "persist: truncated agent record in %s", path)
			return nil
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 5 {
			log.Report(rerrors.PersistError, token.Position{}, "", "persist: malformed agent header in %s", path)
			return nil
		}
		id, _ := strconv.ParseInt(fields[0], 10, 64)
		methodName := fields[1]
		major, _ := strconv.Atoi(fields[2])
		minor, _ := strconv.Atoi(fields[3])
		patch, _ := strconv.Atoi(fields[4])

		if !sc.Scan() {
			log.Report(rerrors.PersistError, token.Position{}, "", "persist: truncated agent memory in %s", path)
			return nil
		}
		memory := deserializeValue(sc.Text())
		if memory == nil || memory.Kind() != value.KindMap {
			memory = value.NewMap()
		}
		ag.Restore(&agent.Agent{
			ID:         id,
			MethodName: methodName,
			Version:    method.Semver{Major: major, Minor: minor, Patch: patch},
			Memory:     memory,
		})
	}
	ag.SetNextID(int64(nextID))
	return nil
}

func scanInt(sc *bufio.Scanner) int {
	if !sc.Scan() {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(sc.Text()))
	return n
}
