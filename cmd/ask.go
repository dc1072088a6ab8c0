package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rogeecn/nchc-wrapper/internal/config"
	"github.com/rogeecn/nchc-wrapper/internal/translate"
	"github.com/rogeecn/nchc-wrapper/internal/upstream"
	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/spf13/cobra"
)

type chatSender interface {
	Send(ctx context.Context, payload *types.ChatCompletionRequest, apiKey string) ([]byte, error)
}

var newUpstreamClient = func(cfg *config.Config) chatSender {
	return upstream.New(cfg)
}

var (
	askSystemPrompt string
	askModel        string
	askShowUsage    bool
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "直接向上游模型發送一則訊息",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askSystemPrompt, "system-prompt", "", "系統提示詞 (未指定時使用預設角色，傳入空字串則不送出)")
	askCmd.Flags().StringVar(&askModel, "model", "", "模型名稱 (預設: "+types.DefaultModel+")")
	askCmd.Flags().BoolVar(&askShowUsage, "usage", false, "同時輸出 token 用量")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.APIKeyConfigured() {
		return fmt.Errorf("API key not configured: set NCHC_API_KEY")
	}

	req := &types.SimpleChatRequest{
		Message: strings.Join(args, " "),
	}
	if cmd.Flags().Changed("system-prompt") {
		prompt := askSystemPrompt
		req.SystemPrompt = &prompt
	}
	if cmd.Flags().Changed("model") {
		model := askModel
		req.Model = &model
	}

	payload := translate.SimplePayload(req)
	raw, err := newUpstreamClient(cfg).Send(cmd.Context(), payload, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	resp, err := translate.SimpleResponse(raw, payload.Model)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
	if askShowUsage {
		usage, err := json.Marshal(resp.Usage)
		if err != nil {
			return fmt.Errorf("encode usage: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "model: %s\nusage: %s\n", resp.Model, usage)
	}
	return nil
}
