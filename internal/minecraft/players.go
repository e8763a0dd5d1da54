package minecraft

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"wither/internal/command"
)

// Rcon identifies the remote console of a running server. Empty fields are
// left to the client's own defaults.
type Rcon struct {
	Client   string
	Host     string
	Port     int
	Password string
}

func (r Rcon) environ() []string {
	var env []string
	if r.Host != "" {
		env = append(env, "MCRCON_HOST="+r.Host)
	}
	if r.Port > 0 {
		env = append(env, "MCRCON_PORT="+strconv.Itoa(r.Port))
	}
	if r.Password != "" {
		env = append(env, "MCRCON_PASS="+r.Password)
	}
	return env
}

// Command sends one console command and returns the trimmed response
func (r Rcon) Command(ctx context.Context, runner command.Runner, cmd string) (string, error) {
	res, err := runner.Run(ctx, command.Command{Path: r.Client, Args: []string{"-c", cmd}, Env: r.environ()})
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("%s -c %s returned non-zero exit status %d: %s", r.Client, cmd, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// Players asks the server for its connected players
func (r Rcon) Players(ctx context.Context, runner command.Runner) ([]string, error) {
	output, err := r.Command(ctx, runner, "list")
	if err != nil {
		return nil, err
	}
	return ParsePlayerList(output), nil
}

// ParsePlayerList extracts player names from the response to "list", e.g.
// "There are 2 of a max of 20 players online: alice, bob".
func ParsePlayerList(output string) []string {
	players := []string{}

	output = strings.TrimSpace(output)
	if strings.HasPrefix(output, "There are 0") {
		return players
	}

	_, names, found := strings.Cut(output, ": ")
	if !found || names == "" {
		return players
	}
	// Only the segment after the first separator holds names
	names, _, _ = strings.Cut(names, ": ")

	return append(players, strings.Split(names, ", ")...)
}
