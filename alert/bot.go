// Package alert exposes the valuation engine over Slack slash commands, so a
// strategy can be priced from chat without touching the batch CLI.
package alert

import (
	"log"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// Bot serves /value and /help slash commands over a socket-mode connection.
type Bot struct {
	socket *socketmode.Client
}

func NewBot(appToken, botToken string) *Bot {
	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	socket := socketmode.New(
		api,
		socketmode.OptionLog(log.New(log.Writer(), "socketmode: ", log.Lshortfile|log.LstdFlags)),
	)
	return &Bot{socket: socket}
}

// Run blocks, serving slash commands until the connection closes.
func (b *Bot) Run() error {
	go func() {
		for evt := range b.socket.Events {
			if evt.Type != socketmode.EventTypeSlashCommand {
				continue
			}
			data, ok := evt.Data.(slack.SlashCommand)
			if !ok {
				continue
			}
			b.socket.Ack(*evt.Request)
			if err := b.dispatch(data); err != nil {
				log.Printf("%s: %v", data.Command, err)
			}
		}
	}()

	return b.socket.Run()
}

func (b *Bot) dispatch(data slack.SlashCommand) error {
	switch data.Command {
	case "/value":
		return b.handleValue(data)
	case "/help":
		return b.handleHelp(data)
	}
	return nil
}

func (b *Bot) handleHelp(data slack.SlashCommand) error {
	helpText := "Available commands:\n" +
		"/help - Show this help message\n" +
		"/value <spot> <iv> <dte> <rfr> <legs...> - Value a strategy, legs like sp150@3.47 (short put) or lc105@0.80 (long call)"

	_, _, err := b.socket.PostMessage(data.ChannelID,
		slack.MsgOptionText(helpText, false))
	return err
}

func (b *Bot) reply(channelID, text string) error {
	_, _, err := b.socket.PostMessage(channelID, slack.MsgOptionText(text, false))
	return err
}
