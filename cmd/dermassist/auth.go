package main

import (
	"fmt"
	"io"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/result"

	"github.com/spf13/cobra"
)

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.SignupRequest{}
			req.Username, _ = cmd.Flags().GetString("username")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Password, _ = cmd.Flags().GetString("password")
			req.FullName, _ = cmd.Flags().GetString("full-name")
			role, _ := cmd.Flags().GetString("role")
			req.Role = entity.Role(role)
			req.LicenseNumber, _ = cmd.Flags().GetString("license")
			req.Specialization, _ = cmd.Flags().GetString("specialization")
			req.ClinicName, _ = cmd.Flags().GetString("clinic")
			req.YearsOfExperience, _ = cmd.Flags().GetInt("experience")

			res := result.From(app.Auth.Signup(cmd.Context(), req))
			return show(cmd, res, func(w io.Writer, u *entity.User) {
				fmt.Fprintln(w, "Account created. Signed in as:")
				printUser(w, u)
			})
		},
	}
	cmd.Flags().String("username", "", "Username")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (at least 8 characters)")
	cmd.Flags().String("full-name", "", "Full name")
	cmd.Flags().String("role", string(entity.RolePatient), "patient or dermatologist")
	cmd.Flags().String("license", "", "License number (dermatologists)")
	cmd.Flags().String("specialization", "", "Specialization (dermatologists)")
	cmd.Flags().String("clinic", "", "Clinic name (dermatologists)")
	cmd.Flags().Int("experience", 0, "Years of experience (dermatologists)")
	return cmd
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with username or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.LoginRequest{}
			req.Username, _ = cmd.Flags().GetString("username")
			req.Password, _ = cmd.Flags().GetString("password")

			res := result.From(app.Auth.Login(cmd.Context(), req))
			return show(cmd, res, func(w io.Writer, u *entity.User) {
				fmt.Fprintf(w, "Welcome back, %s.\n", u.DisplayName())
			})
		},
	}
	cmd.Flags().String("username", "", "Username or email")
	cmd.Flags().String("password", "", "Password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			fetch := app.Auth.CurrentUser
			if refresh {
				fetch = app.Auth.RefreshCurrentUser
			}
			return show(cmd, result.From(fetch(cmd.Context())), printUser)
		},
	}
	cmd.Flags().Bool("refresh", false, "Reload the profile from the server")
	return cmd
}

func checkUsernameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-username <username>",
		Short: "Check whether a username is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := result.From(app.Auth.CheckUsername(cmd.Context(), args[0]))
			return show(cmd, res, func(w io.Writer, available bool) {
				if available {
					fmt.Fprintf(w, "%s is available\n", args[0])
				} else {
					fmt.Fprintf(w, "%s is taken\n", args[0])
				}
			})
		},
	}
}

func passwordResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Reset a forgotten password",
	}

	request := &cobra.Command{
		Use:   "request <email>",
		Short: "Email a one-time code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.RequestPasswordReset(cmd.Context(), &dto.ForgotPasswordRequest{Email: args[0]}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "If the address is registered, a code has been sent.")
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Exchange the code for a reset token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := result.From(app.Auth.VerifyOTP(cmd.Context(), &dto.VerifyOTPRequest{Email: args[0], OTP: args[1]}))
			return show(cmd, res, func(w io.Writer, token string) {
				fmt.Fprintln(w, "Reset token:", token)
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset <email>",
		Short: "Set a new password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.ResetPasswordRequest{Email: args[0]}
			req.ResetToken, _ = cmd.Flags().GetString("token")
			req.NewPassword, _ = cmd.Flags().GetString("password")
			req.ConfirmPassword, _ = cmd.Flags().GetString("confirm")
			if err := app.Auth.ResetPassword(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated. You can now log in.")
			return nil
		},
	}
	reset.Flags().String("token", "", "Reset token from verify")
	reset.Flags().String("password", "", "New password")
	reset.Flags().String("confirm", "", "New password again")

	cmd.AddCommand(request, verify, reset)
	return cmd
}
