package main

import (
	"fmt"
	"text/tabwriter"
	"wither/internal/command"
	"wither/internal/minecraft"

	"github.com/spf13/cobra"
)

func newPlayersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List the players connected to the Minecraft server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rcon := minecraft.Rcon{
				Client:   a.cfg.Path.MCRcon,
				Host:     a.cfg.Rcon.Host,
				Port:     a.cfg.Rcon.Port,
				Password: a.cfg.Rcon.Password,
			}
			players, err := rcon.Players(cmd.Context(), command.NewExecRunner())
			if err != nil {
				a.logger.Error().Err(err).Msg("Failed to query players")
				return err
			}
			for _, player := range players {
				fmt.Fprintln(cmd.OutOrStdout(), player)
			}
			return nil
		},
	}
}

func newServersCommand(a *app) *cobra.Command {
	procRoot := "/proc"
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List running Minecraft servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			servers, err := minecraft.FindServers(procRoot)
			if err != nil {
				a.logger.Error().Err(err).Msg("Failed to scan processes")
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PID\tPORT\tMOTD\tPATH")
			for _, s := range servers {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", s.PID, s.Port, s.MOTD, s.Path)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&procRoot, "proc", procRoot, "process table mount point")
	return cmd
}
