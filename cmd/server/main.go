package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/agora/internal/api"
	"github.com/jacentio/agora/internal/config"
	"github.com/jacentio/agora/internal/forum"
	"github.com/jacentio/agora/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	client, err := newDynamoClient(context.Background(), cfg)
	if err != nil {
		log.Error("dynamodb client", "error", err)
		os.Exit(1)
	}

	st := store.New(client, store.Config{TablePrefix: cfg.TablePrefix})

	hasher := forum.NewHasher(cfg.PasswordHashSalt)
	users := forum.NewUsers(st.Collection("users"), hasher)
	threads := forum.NewThreads(st.Collection("threads"), users)
	posts := forum.NewPosts(st.Collection("posts"), users)

	handler := api.NewHandler(users, threads, posts, log)
	router := api.NewRouter(handler, cfg.CorsOptions, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("listening", "port", cfg.Port, "table_prefix", cfg.TablePrefix)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}

// newDynamoClient builds the DynamoDB client. When DYNAMO_ENDPOINT is set,
// the client targets a local instance with static dev credentials.
func newDynamoClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	if cfg.DynamoEndpoint != "" {
		opts = append(opts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	}), nil
}
