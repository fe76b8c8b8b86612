// Package conversation handles the small-talk path: utterances that are
// neither physical commands nor knowledge-base questions.
package conversation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"robot/llm"
	"robot/prompts"
)

// CommandMode is returned when the conversational model decides mid-reply
// that the utterance is actually a physical command. The dispatcher then
// re-routes the utterance to the task engine.
const CommandMode = "__COMMAND_MODE__"

// OutOfDomainReply is the fixed apology for topics the robot does not cover.
const OutOfDomainReply = "I apologize, but I am a household assistant robot and cannot provide " +
	"information about topics outside my domain. I am designed to help with household tasks " +
	"like picking up objects, navigating rooms, and delivering items."

// commandSignal is the sentence the prompt instructs the model to emit for
// disguised commands.
const commandSignal = "I understand you want me to perform a command"

// outOfDomainSignal is the sentence the prompt instructs the model to emit
// for out-of-domain topics.
const outOfDomainSignal = "cannot provide information about topics outside my domain"

// Agent produces conversational replies.
type Agent struct {
	generator llm.Generator
}

// NewAgent creates a conversation agent over an inference service.
func NewAgent(generator llm.Generator) *Agent {
	return &Agent{generator: generator}
}

// Process replies to one utterance. It returns CommandMode when the model
// flags the utterance as a physical command, and a fixed apology for
// out-of-domain topics. Inference failures become a polite fallback sentence,
// never an error the user sees raw.
func (a *Agent) Process(ctx context.Context, utterance string) string {
	reply, err := a.generator.Generate(ctx, fmt.Sprintf(prompts.ConversationPrompt, utterance))
	if err != nil {
		log.Printf("[CONVERSATION_ERROR] Inference failed: %v", err)
		return "Sorry, I had a problem processing your message. Please try again or rephrase your sentence."
	}

	if strings.Contains(reply, commandSignal) {
		return CommandMode
	}
	if strings.Contains(reply, outOfDomainSignal) {
		return OutOfDomainReply
	}

	return strings.TrimSpace(reply)
}
