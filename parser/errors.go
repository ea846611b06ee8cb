package parser

import "github.com/helena-lang/helena-go/herrors"

// unmatchedLeftKind maps an unclosed context's kind to the PARSE_ERROR
// phrase close_stream reports for it (spec §4.2 error taxonomy).
var unmatchedLeftKind = map[contextKind]herrors.Kind{
	ctxTuple:        herrors.UnmatchedLeftParenthesis,
	ctxBlock:        herrors.UnmatchedLeftBrace,
	ctxExpression:   herrors.UnmatchedLeftBracket,
	ctxString:       herrors.UnmatchedStringDelimiter,
	ctxHereString:   herrors.UnmatchedHereString,
	ctxTaggedString: herrors.UnmatchedTaggedString,
	ctxBlockComment: herrors.UnmatchedBlockComment,
}

var mismatchedRightKind = map[contextKind]herrors.Kind{
	ctxTuple:      herrors.MismatchedRightParen,
	ctxBlock:      herrors.MismatchedRightBrace,
	ctxExpression: herrors.MismatchedRightBracket,
}
