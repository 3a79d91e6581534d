package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 0, 4096)
		tmp := make([]byte, 4096)
		for {
			n, err := r.Read(tmp)
			if n > 0 {
				buf = append(buf, tmp[:n]...)
			}
			if err != nil {
				break
			}
		}
		done <- string(buf)
	}()

	fn()

	os.Stdout = orig
	w.Close()
	out := <-done
	r.Close()
	return out
}

func writeTempPas(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestRunCommandHelloWorld(t *testing.T) {
	path := writeTempPas(t, "hello.pas", `program Hello;
begin
  writeln('Hello, World!')
end.`)

	out := captureStdout(t, func() {
		if err := runProgram(nil, []string{path}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})

	snaps.MatchSnapshot(t, "run_hello_world", out)
}

func TestRunCommandArrayLoop(t *testing.T) {
	path := writeTempPas(t, "arr.pas", `program Arr;
var a:array[1..3] of integer; i:integer;
begin
  for i:=1 to 3 do a[i]:=i*i;
  for i:=1 to 3 do write(a[i])
end.`)

	out := captureStdout(t, func() {
		if err := runProgram(nil, []string{path}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	})

	snaps.MatchSnapshot(t, "run_array_loop", out)
}

func TestCompileThenRunPrecompiledListing(t *testing.T) {
	srcPath := writeTempPas(t, "sum.pas", `program Sum;
var a,b:integer;
begin
  a:=2; b:=3; writeln(a+b)
end.`)

	outputFile = ""
	disassemble = false
	if err := compileScript(nil, []string{srcPath}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	pvmPath := srcPath[:len(srcPath)-len(filepath.Ext(srcPath))] + ".pvm"
	if _, err := os.Stat(pvmPath); err != nil {
		t.Fatalf("expected a .pvm listing at %s: %v", pvmPath, err)
	}

	out := captureStdout(t, func() {
		if err := runProgram(nil, []string{pvmPath}); err != nil {
			t.Fatalf("run of precompiled listing failed: %v", err)
		}
	})

	snaps.MatchSnapshot(t, "run_precompiled_sum", out)
}
