package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "bikeshare", Short: "Bike-sharing demand model"}
	root.PersistentFlags().String("config", "", "config file (defaults are used if empty)")
	root.PersistentFlags().String("version", "", "artifact version (config version if empty)")
	addCommands(root)
	root.Execute()
}

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the pipeline and persist it as the version artifact",
		Args:  cobra.NoArgs,
		Run:   train}
	cmd.Flags().String("data", "", "training CSV file (config training_data_file if empty)")
	cmd.Flags().Bool("keep-stale", false, "keep artifacts of other versions")
	cmd.Flags().String("export", "", "also copy the artifact to this file")
	cmd.Flags().BoolP("quiet", "q", false, "silence progress output")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "predict file",
		Short: "Score records of CSV file",
		Args:  cobra.ExactArgs(1),
		Run:   predict}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Args:  cobra.NoArgs,
		Run:   serve}
	cmd.Flags().String("addr", ":8001", "listen address")
	cmd.Flags().StringArray("origin", nil, "allowed CORS origin")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "cleanup",
		Short: "Delete artifacts of all versions except the active one",
		Args:  cobra.NoArgs,
		Run:   cleanup}
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "list-versions",
		Short: "List versions of stored artifacts",
		Args:  cobra.NoArgs,
		Run:   listVersions}
	root.AddCommand(cmd)
}
