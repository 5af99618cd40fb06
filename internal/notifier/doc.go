// Package notifier delivers newly published bulletin records to outside
// channels.
//
// The watch loop hands each batch of new records to a Notifier. Twitter
// posts one tweet per record, Telegram sends one digest message per
// batch, and the dry-run notifier prints what would be sent without
// touching any network.
package notifier
