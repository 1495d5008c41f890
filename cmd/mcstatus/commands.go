package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mcstatus/lib/lan"
	"mcstatus/lib/ping"
	"mcstatus/lib/status"
	"mcstatus/lib/utility"
)

func socketConf() status.SocketConf {
	return status.SocketConf{ReadTimeout: flagReadTimeout, WriteTimeout: flagWriteTimeout}
}

func printBox(lines []string) {
	fmt.Println(utility.Boxify(lines))
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping <host[:port]>",
		Short: "Modern (1.7+) Server List Ping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := status.NewConfFromString(args[0])
			if err != nil {
				return err
			}
			srv, err := conf.GetServerStatus(socketConf())
			if err != nil {
				return err
			}
			latency, err := conf.GetServerPing(socketConf())
			if err != nil {
				return err
			}
			printBox([]string{
				fmt.Sprintf("version:  %s (protocol %d)", srv.Version.Name, srv.Version.Protocol),
				fmt.Sprintf("players:  %d/%d", srv.Players.Online, srv.Players.Max),
				fmt.Sprintf("motd:     %s", srv.Description.FlattenText()),
				fmt.Sprintf("latency:  %s", latency),
			})
			return nil
		},
	}
}

func newNettyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "netty <host[:port]>",
		Short: "1.6 Server List Ping",
		Args:  cobra.ExactArgs(1),
		RunE:  runLegacyLike((*status.Conf).GetNettyServerStatus),
	}
}

func newLegacyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legacy <host[:port]>",
		Short: "1.4-1.5 Server List Ping (falls back to Beta Legacy)",
		Args:  cobra.ExactArgs(1),
		RunE:  runLegacyLike((*status.Conf).GetLegacyServerStatus),
	}
}

func runLegacyLike(call func(*status.Conf, status.SocketConf) (*ping.LegacyServer, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		conf, err := status.NewConfFromString(args[0])
		if err != nil {
			return err
		}
		srv, err := call(conf, socketConf())
		if err != nil {
			return err
		}
		printBox([]string{
			fmt.Sprintf("motd:     %s", srv.MOTD),
			fmt.Sprintf("version:  %s (protocol %d)", srv.Version, srv.Protocol),
			fmt.Sprintf("players:  %d/%d", srv.Online, srv.Max),
		})
		return nil
	}
}

func newBetaLegacyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beta-legacy <host[:port]>",
		Short: "pre-1.4 Server List Ping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := status.NewConfFromString(args[0])
			if err != nil {
				return err
			}
			srv, err := conf.GetBetaLegacyServerStatus(socketConf())
			if err != nil {
				return err
			}
			printBox([]string{
				fmt.Sprintf("motd:     %s", srv.MOTD),
				fmt.Sprintf("players:  %d/%d", srv.Online, srv.Max),
			})
			return nil
		},
	}
}

func newQueryBasicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query-basic <host[:port]>",
		Short: "Query (GS4) basic stat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := status.NewConfFromString(args[0])
			if err != nil {
				return err
			}
			st, err := conf.QueryBasic(socketConf())
			if err != nil {
				return err
			}
			printBox([]string{
				fmt.Sprintf("motd:     %s", st.MOTD),
				fmt.Sprintf("gametype: %s", st.GameType),
				fmt.Sprintf("map:      %s", st.Map),
				fmt.Sprintf("players:  %d/%d", st.Online, st.Max),
				fmt.Sprintf("address:  %s:%d", st.HostIP, st.HostPort),
			})
			return nil
		},
	}
}

func newQueryFullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query-full <host[:port]>",
		Short: "Query (GS4) full stat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := status.NewConfFromString(args[0])
			if err != nil {
				return err
			}
			st, err := conf.QueryFull(socketConf())
			if err != nil {
				return err
			}
			printBox([]string{
				fmt.Sprintf("hostname: %s", st.Hostname),
				fmt.Sprintf("version:  %s", st.Version),
				fmt.Sprintf("gametype: %s", st.GameType),
				fmt.Sprintf("map:      %s", st.Map),
				fmt.Sprintf("players:  %d/%d (%s)", st.Online, st.Max, strings.Join(st.Players, ", ")),
				fmt.Sprintf("plugins:  %d", len(st.PluginList)),
			})
			return nil
		},
	}
}

func newBedrockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bedrock <host[:port]>",
		Short: "RakNet Unconnected Ping against a Bedrock server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var conf *status.Conf
			if strings.Contains(args[0], ":") {
				var err error
				conf, err = status.NewConfFromString(args[0])
				if err != nil {
					return err
				}
			} else {
				conf = status.NewConfBedrock(args[0])
			}
			srv, err := conf.GetBedrockRaknetStatus(socketConf())
			if err != nil {
				return err
			}
			printBox([]string{
				fmt.Sprintf("edition:  %s", srv.Edition),
				fmt.Sprintf("motd:     %s / %s", srv.MOTDLine1, srv.MOTDLine2),
				fmt.Sprintf("version:  %s (protocol %d)", srv.VersionName, srv.ProtocolVersion),
				fmt.Sprintf("players:  %d/%d", srv.PlayersOnline, srv.PlayersMax),
			})
			return nil
		},
	}
}

func newLanCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "lan",
		Short: "Listen for LAN world advertisements",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, out, err := lan.Discover(lan.Options{})
			if err != nil {
				return err
			}
			defer handle.Cancel()

			timer := time.NewTimer(duration)
			defer timer.Stop()

			for {
				select {
				case srv, ok := <-out:
					if !ok {
						return nil
					}
					fmt.Printf("%-30s %s\n", srv.MOTD, srv.Address)
				case <-timer.C:
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "how long to listen before exiting")
	return cmd
}
