package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/hexbenjamin/webster"
)

// Run executes the chat command as a read-answer loop over stdin.
func (c *ChatCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Site)
	if err != nil {
		return err
	}

	var conv *webster.Conversation
	if c.Resume != "" {
		conv, err = deps.Conversations.FindConversationByID(deps.Ctx, c.Resume)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
			return err
		}
		if conv.SiteID != site.ID {
			fmt.Fprintf(deps.Stderr, "error: conversation %s belongs to a different site\n", c.Resume)
			return webster.Errorf(webster.EINVALID, "conversation %s belongs to a different site", c.Resume)
		}
		if err := c.printHistory(deps, conv.ID); err != nil {
			return err
		}
	} else {
		conv, err = deps.Engine.StartConversation(deps.Ctx, site.ID, "")
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Chatting about %q. Type 'exit' to quit.\n", site.Name)

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := deps.Engine.Send(deps.Ctx, conv.ID, question)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
			continue
		}

		fmt.Fprintln(deps.Stdout, answer.Text)
		printSources(deps, answer.Sources)
		fmt.Fprintln(deps.Stdout)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nResume this conversation with 'webster chat %s --resume %s'\n", c.Site, conv.ID)
	return nil
}

// printHistory replays a resumed conversation's messages.
func (c *ChatCmd) printHistory(deps *Dependencies, conversationID string) error {
	messages, err := deps.Conversations.FindMessages(deps.Ctx, conversationID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}
	for _, msg := range messages {
		switch msg.Role {
		case webster.RoleUser:
			fmt.Fprintf(deps.Stdout, "> %s\n", msg.Content)
		case webster.RoleAssistant:
			fmt.Fprintf(deps.Stdout, "%s\n\n", msg.Content)
		}
	}
	return nil
}
