package minecraft

import (
	"sort"
	"strings"

	"github.com/prometheus/procfs"
)

// Server is a running Java server process found in the process table
type Server struct {
	PID  int    `json:"pid"`
	Path string `json:"path"`
	MOTD string `json:"motd"`
	Port int    `json:"port"`
}

// FindServers scans procRoot (normally /proc) for java processes and reads
// the server.properties of their working directories. Processes that vanish
// or cannot be inspected are skipped.
func FindServers(procRoot string) ([]Server, error) {
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, err
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, err
	}
	sort.Sort(procs)

	var servers []Server
	for _, proc := range procs {
		exe, err := proc.Executable()
		if err != nil || !strings.HasSuffix(exe, "/bin/java") {
			continue
		}
		cwd, err := proc.Cwd()
		if err != nil || cwd == "" {
			continue
		}

		props, _ := ParseServerProperties(cwd)
		servers = append(servers, Server{
			PID:  proc.PID,
			Path: cwd,
			MOTD: ServerMOTD(props),
			Port: ServerPort(props),
		})
	}
	return servers, nil
}
