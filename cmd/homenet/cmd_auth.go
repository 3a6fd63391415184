package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/spf13/cobra"
)

var (
	usernameFlag string
	emailFlag    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a HomeNet account",
	Long:  `Create a new account. Registration does not log you in.`,
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to HomeNet",
	Long:  `Exchange username and password for an access token kept in the local store.`,
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Long:  `Forget the stored access token and cached profile.`,
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Long:  `Show the cached profile and the access token's subject and expiry.`,
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().StringVarP(&usernameFlag, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "email address")
	loginCmd.Flags().StringVarP(&usernameFlag, "username", "u", "", "username")
}

func askUsername() (string, error) {
	if usernameFlag != "" {
		return usernameFlag, nil
	}
	username, err := prompt("Enter username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return "", errors.New("username cannot be empty")
	}
	return username, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	username, err := askUsername()
	if err != nil {
		return err
	}

	email := emailFlag
	if email == "" {
		if email, err = prompt("Enter email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	// Confirm password
	confirmation, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	user, err := a.client.Register(cmd.Context(), models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return describeError("registration failed", err)
	}

	fmt.Printf("\n✓ Account created successfully!\n")
	fmt.Printf("ID: %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Println("\nLog in with: homenet login")
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	username, err := askUsername()
	if err != nil {
		return err
	}
	password, err := readPassword("Enter password: ")
	if err != nil {
		return err
	}

	if _, err := a.client.Login(ctx, username, password); err != nil {
		return describeError("login failed", err)
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		return describeError("failed to load profile", err)
	}
	if err := a.local.SetUser(ctx, *user); err != nil {
		log.Warn().Err(err).Msg("Failed to cache user")
	}

	fmt.Printf("\n✓ Logged in as %s\n", user.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := a.local.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Println("✓ Logged out")
	return nil
}

// tokenInfo holds the claims shown by whoami. The token is not verified:
// only the backend holds the signing key.
type tokenInfo struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

func inspectToken(token string) (tokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenInfo{}, fmt.Errorf("failed to parse token: %w", err)
	}

	var info tokenInfo
	info.Subject, _ = claims.GetSubject()
	if info.Subject == "" {
		info.Subject, _ = claims["user_id"].(string)
	}
	info.Username, _ = claims["username"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	token, err := a.local.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Println("Not logged in. Run: homenet login")
		return nil
	}

	printHeader("Current Session")

	user, err := a.local.User(ctx)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email:    %s\n", user.Email)
		fmt.Printf("ID:       %s\n", user.ID)
	}

	info, err := inspectToken(token)
	if err != nil {
		fmt.Printf("Token:    unreadable (%v)\n", err)
	} else {
		if user == nil && info.Username != "" {
			fmt.Printf("Username: %s\n", info.Username)
		}
		fmt.Printf("Subject:  %s\n", info.Subject)
		if !info.ExpiresAt.IsZero() {
			status := "valid"
			if time.Now().After(info.ExpiresAt) {
				status = "expired"
			}
			fmt.Printf("Expires:  %s (%s)\n", info.ExpiresAt.Local().Format("2006-01-02 15:04:05"), status)
		}
	}

	printFooter()
	return nil
}
