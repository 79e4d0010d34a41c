package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/picker"
)

// service implements the Service interface
type service struct {
	picker picker.Picker
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	svc := &service{}
	if cfg != nil && cfg.Picker != nil {
		svc.picker = cfg.Picker
	} else {
		svc.picker = picker.New(nil)
	}

	return svc, nil
}

// GetAnnouncement returns the announcement for an audit record
func (s *service) GetAnnouncement(ctx context.Context, input *GetAnnouncementInput) (*GetAnnouncementOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.New("input and record cannot be nil")
	}

	details := input.Record.Details
	if details == nil {
		details = map[string]string{}
	}

	var (
		title    string
		messages []string
	)

	switch input.Record.Action {
	case models.AuditActionGameStarted:
		title = "📦 Caixa Misteriosa aberta!"
		messages = []string{
			"Uma nova Caixa Misteriosa chegou! A primeira dica já está no ar. Manda o seu palpite!",
			"Começou! Tem produto novo escondido na caixa. Fica de olho nas dicas e chuta!",
			"Valendo! Já dá pra palpitar. Quem acerta o que tem na caixa?",
		}
	case models.AuditActionClueRevealed:
		number := details["clueNumber"]
		title = fmt.Sprintf("🔎 Dica %s de %d", number, models.MaxClues)
		messages = []string{
			fmt.Sprintf("Saiu a dica número %s! Já sabe o que é?", number),
			fmt.Sprintf("Mais uma pista na área: dica %s liberada.", number),
			fmt.Sprintf("Dica %s revelada. Tá ficando fácil, hein?", number),
		}
	case models.AuditActionSubmissionsEnded:
		title = "⏰ Palpites encerrados"
		if total, ok := details["totalSubmissions"]; ok {
			messages = []string{
				fmt.Sprintf("Acabou o tempo! Recebemos %s palpites. Já já tem sorteio.", total),
				fmt.Sprintf("Palpites encerrados com %s tentativas. Agora é torcer!", total),
			}
		} else {
			messages = []string{
				"Acabou o tempo! Já já tem sorteio.",
				"Palpites encerrados. Agora é torcer!",
			}
		}
	case models.AuditActionWinnerDrawn, models.AuditActionWinnerDrawnFromAll:
		winner := details["participantName"]
		if winner == "" {
			winner = "o participante sorteado"
		}
		guess := details["guess"]
		title = "🏆 Temos um ganhador!"
		if input.Record.Action == models.AuditActionWinnerDrawnFromAll {
			messages = []string{
				fmt.Sprintf("Ninguém acertou, então sorteamos entre todos os palpites. Parabéns, %s!", winner),
				fmt.Sprintf("Sorteio geral feito! A sorte sorriu para %s.", winner),
			}
		} else {
			messages = []string{
				fmt.Sprintf("Parabéns, %s! O palpite \"%s\" estava certo e foi o sorteado.", winner, guess),
				fmt.Sprintf("%s acertou com \"%s\" e levou a Caixa Misteriosa!", winner, guess),
				fmt.Sprintf("E o sorteado entre os acertos é... %s! Palpite: \"%s\".", winner, guess),
			}
		}
	case models.AuditActionGameReset:
		title = "🔄 Jogo reiniciado"
		messages = []string{
			"Zeramos tudo! Em breve uma nova Caixa Misteriosa.",
		}
	default:
		return &GetAnnouncementOutput{Announce: false}, nil
	}

	return &GetAnnouncementOutput{
		Announce: true,
		Title:    title,
		Message:  s.pick(messages),
	}, nil
}

// GetLiveMessage returns a status line for the live game
func (s *service) GetLiveMessage(ctx context.Context, input *GetLiveMessageInput) (*GetLiveMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Status {
	case models.GameStatusAccepting:
		messages = []string{
			fmt.Sprintf("Palpites abertos! %d de %d dicas reveladas e %d palpites até agora.", input.RevealedClues, models.MaxClues, input.SubmissionCount),
			fmt.Sprintf("Ainda dá tempo! Já foram %d palpites com %d dicas no ar.", input.SubmissionCount, input.RevealedClues),
		}
	case models.GameStatusClosed:
		messages = []string{
			fmt.Sprintf("Palpites encerrados com %d tentativas. Aguardando o sorteio.", input.SubmissionCount),
		}
	default:
		messages = []string{
			"Nenhuma Caixa Misteriosa no ar agora. Fica ligado!",
		}
	}

	return &GetLiveMessageOutput{Message: s.pick(messages)}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeNoActiveGame:
		messages = []string{
			"Não tem jogo rolando agora. Aguarda a próxima caixa!",
			"A caixa ainda está fechada. Volta daqui a pouco!",
		}
	case ErrorTypeNotAccepting:
		messages = []string{
			"Os palpites já foram encerrados para esta caixa.",
			"Chegou tarde! Os palpites desta rodada acabaram.",
		}
	case ErrorTypeQuotaExceeded:
		messages = []string{
			"Você já usou todos os seus palpites. Indique amigos para ganhar mais!",
			"Seus palpites acabaram nesta rodada. Cada amigo indicado vale um palpite extra.",
		}
	case ErrorTypeRejected:
		messages = []string{
			"Esse palpite não passou na moderação. Tenta outro!",
		}
	default:
		messages = []string{
			"Algo deu errado. Tenta de novo em instantes.",
		}
	}

	return &GetErrorMessageOutput{
		Title:   "Ops!",
		Message: s.pick(messages),
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.picker.Intn(len(messages))]
}
