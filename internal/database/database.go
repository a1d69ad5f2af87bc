// Package database builds the Firebase app and the Firestore client shared
// by the repositories and the identity verifier.
//
// It handles:
//   - turning the configured service-account fields into a credential
//   - creating the Firebase app and its Firestore client
//   - a read against Firestore at startup so bad credentials fail fast
package database

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// PingTimeout bounds the startup connectivity check.
const PingTimeout = 10 * time.Second

// Database holds the Firebase app and its Firestore client.
type Database struct {
	App    *firebase.App
	Client *firestore.Client
	log    *zerolog.Logger
}

// serviceAccount is the JSON credential layout Google client libraries read.
type serviceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// CredentialsJSON renders cfg as a service-account key file.
func CredentialsJSON(cfg *config.FirebaseConfig) ([]byte, error) {
	return json.Marshal(serviceAccount{
		Type:                    "service_account",
		ProjectID:               cfg.ProjectID,
		PrivateKeyID:            cfg.PrivateKeyID,
		PrivateKey:              cfg.PrivateKey,
		ClientEmail:             cfg.ClientEmail,
		ClientID:                cfg.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       cfg.CertURL,
	})
}

// New creates the Firebase app and Firestore client and checks that
// Firestore answers.
func New(ctx context.Context, cfg *config.FirebaseConfig, logger *zerolog.Logger) (*Database, error) {
	creds, err := CredentialsJSON(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode firebase credentials")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firestore client")
	}

	db := &Database{
		App:    app,
		Client: client,
		log:    logger,
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to reach firestore")
	}

	logger.Info().Str("project_id", cfg.ProjectID).Msg("connected to firestore")

	return db, nil
}

// Ping lists at most one collection. An empty database is still reachable.
func (db *Database) Ping(ctx context.Context) error {
	_, err := db.Client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

// Close releases the Firestore client.
func (db *Database) Close() error {
	db.log.Info().Msg("closing firestore client")
	return db.Client.Close()
}
