package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"anganwadi/config"
	"anganwadi/storage"

	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Inspect the image bucket",
	Long:  `List the uploaded program images and show bucket statistics, for operator inspection of the MinIO storage backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := store.DescribeBucket(ctx)
		if err != nil {
			log.Fatalf("Failed to describe bucket: %v", err)
		}

		fmt.Printf("Bucket: %s\n", cfg.MinioBucket)
		fmt.Printf("Objects: %d\n", stats.TotalObjects)
		fmt.Printf("Total size: %.2f MB\n", float64(stats.TotalSize)/1024/1024)
		if !stats.LastModified.IsZero() {
			fmt.Printf("Last modified: %s\n", stats.LastModified.Format(time.RFC3339))
		}

		objects, err := store.ListFolder(ctx, minioPrefix)
		if err != nil {
			log.Fatalf("Failed to list objects: %v", err)
		}

		fmt.Println("\nObjects:")
		for _, object := range objects {
			fmt.Printf("%s  %d bytes  %s\n", object.Key, object.Size, object.LastModified.Format(time.RFC3339))
		}
	},
}

func init() {
	minioCmd.Flags().StringVar(&minioPrefix, "prefix", "", "only list objects under this prefix")
	rootCmd.AddCommand(minioCmd)
}
