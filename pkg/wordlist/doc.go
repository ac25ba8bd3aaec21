/*
Package wordlist reads training words for the markov package, either from
plain text files with one word per line or from named wordlists kept in a
SQLite database, optionally filtered by a regular expression.
*/
package wordlist
