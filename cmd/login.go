package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/screens/home"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/login"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
)

// loginInput is what the login command collects from flags or the form.
type loginInput struct {
	ID       string
	Symptoms string
	Consent  bool
}

func (in loginInput) validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New(login.MissingID)
	}
	if !in.Consent {
		return errors.New(login.MissingConsent)
	}
	return nil
}

func loginForm(in *loginInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("참여자 ID").
				Placeholder("예: P001").
				Value(&in.ID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New(login.MissingID)
					}
					return nil
				}),
			huh.NewText().
				Title("현재 증상 (선택)").
				Placeholder("예: 이틀 전부터 두통이 있어요").
				Value(&in.Symptoms),
			huh.NewConfirm().
				Title("연습 대화가 연구 목적으로 기록되는 것에 동의합니다.").
				Affirmative("동의").
				Negative("거부").
				Value(&in.Consent),
		),
	).WithShowHelp(false)
}

func newLoginCmd() *cobra.Command {
	var in loginInput
	c := &cobra.Command{
		Use:   "login",
		Short: "Store the participant identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.ID == "" && isInteractive() {
				if err := loginForm(&in).Run(); err != nil {
					return fmt.Errorf("login form: %w", err)
				}
			}
			in.ID = strings.TrimSpace(in.ID)
			if err := in.validate(); err != nil {
				return err
			}

			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			u := session.UserSession{
				ParticipantID: in.ID,
				Symptoms:      strings.TrimSpace(in.Symptoms),
				Consent:       true,
				LoginTime:     time.Now().UTC(),
			}
			if err := e.sessions.Set(ctx, u); err != nil {
				return fmt.Errorf("%s: %w", login.SaveFailed, err)
			}
			if err := e.client.SaveUserData(ctx, u.UserData()); err != nil {
				e.log.Warn("register participant failed", zap.Error(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), login.Welcome+"\n", in.ID)
			return nil
		},
	}
	c.Flags().StringVar(&in.ID, "id", "", "Participant id")
	c.Flags().StringVar(&in.Symptoms, "symptoms", "", "Current symptoms")
	c.Flags().BoolVar(&in.Consent, "consent", false, "Agree to the recording of practice conversations")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.sessions.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), home.LoggedOut)
			return nil
		},
	}
}
