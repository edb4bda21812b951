// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package strindex builds classic string indexes over byte texts with a
// small alphabet and enumerates exact pattern occurrences from them.
//
// A text is first remapped through an Alphabet to dense integer codes,
// with code 0 reserved for the sentinel that terminates the coded text
// and sorts before every real symbol. From the coded text the package
// constructs suffix arrays (Skew and Sais), the Burrows-Wheeler
// transform with its C and O rank tables (backward search), and suffix
// trees (NaiveSuffixTree and McCreightSuffixTree). Online matchers work
// on the raw bytes and need no index at all.
//
// Every search, online or indexed, is served through the same Matcher
// contract: Next returns match positions until it reports -1.
package strindex
