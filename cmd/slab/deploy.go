package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slab-dev/slab/internal/config"
	"github.com/slab-dev/slab/internal/errors"
	"github.com/slab-dev/slab/internal/publish"
	"github.com/slab-dev/slab/pkg/codegen"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		prune  bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload generated code to S3",
		Long: `Upload the generated output directory to an S3 bucket.

Credentials are read from the standard AWS environment variables
(AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN).
The bucket, prefix and region come from the publish section of
slab.json unless overridden with flags.

Examples:
  slab deploy
  slab deploy --bucket=my-templates --region=us-east-1
  slab deploy --prune`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bucket, prefix, region, prune)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from slab.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from slab.json)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (default from slab.json)")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete remote objects not present locally")

	return cmd
}

func runDeploy(bucket, prefix, region string, prune bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Publish.Bucket
	}
	if prefix == "" {
		prefix = cfg.Publish.Prefix
	}
	if region == "" {
		region = cfg.Publish.Region
	}
	if bucket == "" || region == "" {
		return errors.New("E302").
			WithDetail("Both a bucket and a region are required").
			WithSuggestion("Set publish.bucket and publish.region in slab.json or pass --bucket and --region")
	}

	client, err := publish.NewClient(region)
	if err != nil {
		return err
	}
	publisher := publish.NewPublisher(client, bucket, prefix)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	generator := codegen.NewGenerator(codegen.Options{
		Package:          cfg.Paths.Package,
		Format:           cfg.ASTFormat(),
		EscapeHTML:       cfg.EscapeHTML(),
		EscapeAttributes: cfg.EscapeAttributes(),
	})
	count, err := generator.CompileDir(ctx, cfg.TemplatesPath(), cfg.OutputPath())
	if err != nil {
		return errors.FromError(err, "E201")
	}
	success("Compiled %d templates", count)

	info("Uploading %s to s3://%s/%s", cfg.Paths.Output, bucket, prefix)
	uploaded, err := publisher.Publish(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}
	success("Uploaded %d files", uploaded)

	if prune {
		keep, err := publisher.Keys(cfg.OutputPath())
		if err != nil {
			return err
		}
		deleted, err := publisher.Prune(ctx, keep)
		if err != nil {
			return err
		}
		if deleted > 0 {
			success("Pruned %d stale objects", deleted)
		}
	}

	fmt.Println()
	return nil
}
