package constvars

const (
	CognitoEndpointFormat       = "https://cognito-idp.%s.amazonaws.com/"
	CognitoInitiateAuthTarget   = "AWSCognitoIdentityProviderService.InitiateAuth"
	CognitoAuthFlowUserPassword = "USER_PASSWORD_AUTH"
	CognitoDefaultRegion        = "eu-west-2"
)
