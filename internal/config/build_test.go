package config

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sci-bots/dmfbuild/internal/libres"
)

func TestBuildVars(t *testing.T) {
	b := &Build{
		SoftwareVersion: "1.4.2-feature-x",
		HardwareMajor:   2,
		HardwareMinor:   0,
		IncludeDirs:     []string{"/opt/boost/include", "/usr/include/python2.7"},
		LibDirs:         []string{"/opt/boost/lib", "/usr/lib"},
		Libs:            []string{"boost_thread", "boost_filesystem", "boost_python", "python2.7"},
	}

	g := goldie.New(t)
	g.Assert(t, "build_vars", []byte(strings.Join(b.Vars(), "\n")+"\n"))
}

func TestBuildVarsWindowsSeparator(t *testing.T) {
	// Drive letters carry ":", so windows path lists must join with ";"
	// to split back into the original paths.
	b := &Build{
		SoftwareVersion: "1.4.0",
		HardwareMajor:   2,
		Platform:        libres.Windows,
		IncludeDirs:     []string{`C:\boost\include`, `C:\Python27\include`},
		LibDirs:         []string{`C:\boost\lib`, `C:\Python27\libs`},
		Libs:            []string{"boost_thread-mgw46-mt-1_49", "python27"},
	}

	vars := b.Vars()
	wantCpp := `CPPPATH=C:\boost\include;C:\Python27\include`
	if vars[3] != wantCpp {
		t.Errorf("CPPPATH = %q, want %q", vars[3], wantCpp)
	}
	paths := strings.Split(strings.TrimPrefix(vars[3], "CPPPATH="), ";")
	if len(paths) != 2 || paths[0] != `C:\boost\include` {
		t.Errorf("CPPPATH does not split back into paths: %q", paths)
	}
	wantLib := `LIBPATH=C:\boost\lib;C:\Python27\libs`
	if vars[4] != wantLib {
		t.Errorf("LIBPATH = %q, want %q", vars[4], wantLib)
	}
}
