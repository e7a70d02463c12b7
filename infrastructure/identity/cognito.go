package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"

	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

// cognitoAPI is the slice of the Cognito admin client we use; tests stub it.
type cognitoAPI interface {
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
}

// CognitoProvider deletes accounts at the external identity provider.
// Failures are surfaced to the caller, never retried.
type CognitoProvider struct {
	client     cognitoAPI
	userPoolID string
}

func NewCognitoProvider(ctx context.Context, region, userPoolID string) (*CognitoProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to load AWS configuration for Cognito")
		return nil, err
	}
	return &CognitoProvider{
		client:     cognitoidentityprovider.NewFromConfig(cfg),
		userPoolID: userPoolID,
	}, nil
}

func (p *CognitoProvider) DeleteUser(ctx context.Context, username string) error {
	_, err := p.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		Username:   aws.String(username),
		UserPoolId: aws.String(p.userPoolID),
	})
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"username": username,
		}).Error("Cognito admin delete user failed")
	}
	return err
}

var _ repository.IIdentityProvider = (*CognitoProvider)(nil)
